package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
)

// Extractor returns the readable text of the page behind link.
type Extractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

var _ Extractor = (*ContentExtractor)(nil)

type ContentExtractor struct {
	fetcher *HTTPFetcher
}

func NewContentExtractor(fetcher *HTTPFetcher) *ContentExtractor {
	return &ContentExtractor{fetcher: fetcher}
}

func (e *ContentExtractor) Extract(ctx context.Context, link string) (string, error) {
	data, err := e.fetcher.Download(ctx, link)
	if err != nil {
		return "", err
	}
	return e.Run(data, link)
}

func (e *ContentExtractor) Run(data []byte, pageURL string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	var base *url.URL
	if parsed, err := url.Parse(pageURL); err == nil && parsed.IsAbs() {
		base = parsed
	}

	article, err := readability.FromReader(bytes.NewReader(data), base)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	var buf strings.Builder
	if err := article.RenderText(&buf); err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully",
		"url", pageURL,
		"content_length", len(text))

	return text, nil
}
