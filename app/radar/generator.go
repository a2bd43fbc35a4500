package radar

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"
)

type GeneratorOptions struct {
	BaseURL string
	Version string
}

// Generator renders a radar report as an RSS 2.0 channel. Only scored
// articles at or above the requested minimum score are included.
type Generator struct {
	opts GeneratorOptions
}

func NewGenerator(opts GeneratorOptions) *Generator {
	return &Generator{opts: opts}
}

func (g *Generator) Run(report Report, minScore int) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", "Market Radar", 4)
	if g.opts.BaseURL != "" {
		g.writeElement(&buf, "link", g.opts.BaseURL, 4)
		selfLink := fmt.Sprintf("%s/feeds/radar", strings.TrimRight(g.opts.BaseURL, "/"))
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(selfLink)))
	}
	g.writeElement(&buf, "description",
		fmt.Sprintf("Financial news from the last %d minutes scored %d or higher", report.Minutes, minScore), 4)

	lastBuildDate := report.GeneratedAt
	if lastBuildDate.IsZero() {
		lastBuildDate = time.Now().UTC()
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	if g.opts.Version != "" {
		g.writeElement(&buf, "generator", fmt.Sprintf("Market-Radar/%s", g.opts.Version), 4)
	}

	for _, article := range report.Articles {
		if !article.Result.Scored || article.Result.Score < minScore {
			continue
		}
		g.writeItem(&buf, article)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, article ScoredArticle) {
	buf.WriteString("    <item>\n")

	if article.URL != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(article.URL)))
		xml.EscapeText(buf, []byte(article.URL))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", fmt.Sprintf("[%d] %s", article.Result.Score, article.Title), 6)
	g.writeElement(buf, "link", article.URL, 6)
	g.writeElement(buf, "description", g.description(article), 6)
	g.writeElement(buf, "pubDate", article.PublishedAt.Format(time.RFC1123Z), 6)
	g.writeElement(buf, "category", article.Result.Category, 6)
	g.writeElement(buf, "source", article.Source, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) description(article ScoredArticle) string {
	var b strings.Builder
	b.WriteString(article.Summary)
	if article.Result.Reasoning != "" {
		b.WriteString("\n\nAnalyst: ")
		b.WriteString(article.Result.Reasoning)
	}
	if article.Result.IsStructural {
		b.WriteString("\nStructural signal.")
	}
	return b.String()
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
