package feed

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	SentenceLimit    = 5
	MinSummaryLength = 30
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Normalize strips markup, collapses whitespace and keeps the first
// sentenceLimit sentences. Sentences end at '.', '!' or '?' followed by
// whitespace; abbreviations and decimals are not special-cased.
func Normalize(text string, sentenceLimit int) string {
	if text == "" || sentenceLimit <= 0 {
		return ""
	}

	clean := tagPattern.ReplaceAllString(text, "")
	clean = strings.Join(strings.Fields(clean), " ")
	if clean == "" {
		return ""
	}

	sentences := splitSentences(clean)
	if len(sentences) > sentenceLimit {
		sentences = sentences[:sentenceLimit]
	}

	return strings.Join(sentences, " ")
}

// Summarize normalizes body and falls back to title when the result is too
// short to be useful.
func Summarize(title, body string) string {
	summary := Normalize(body, SentenceLimit)
	if isTooShort(summary) {
		return title
	}
	return summary
}

func isTooShort(text string) bool {
	return utf8.RuneCountInString(text) < MinSummaryLength
}

// splitSentences expects whitespace already collapsed to single spaces.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' {
				sentences = append(sentences, text[start:i+1])
				start = i + 2
			}
		}
	}
	return append(sentences, text[start:])
}
