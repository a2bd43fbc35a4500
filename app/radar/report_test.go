package radar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/market-radar/app/feed"
	"github.com/lysyi3m/market-radar/app/scorer"
)

func TestWriteReport(t *testing.T) {
	report := Report{
		GeneratedAt: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Minutes:     30,
		Sources: []feed.SourceReport{
			{Source: "Wire", Count: 2, Filtered: 1},
			{Source: "Down", Err: errors.New("HTTP error: 503 Service Unavailable")},
		},
		Articles: []ScoredArticle{
			{
				Article: feed.Article{
					Source:      "Wire",
					Title:       "Company X beats",
					URL:         "https://example.com/x",
					PublishedAt: time.Date(2025, 3, 14, 11, 50, 0, 0, time.UTC),
				},
				Result: scorer.Result{Score: 8, Category: "Earnings", Reasoning: "Big beat.", IsStructural: true, Scored: true},
			},
			{
				Article: feed.Article{
					Source:      "Wire",
					Title:       "Unscored item",
					URL:         "https://example.com/y",
					PublishedAt: time.Date(2025, 3, 14, 11, 45, 0, 0, time.UTC),
				},
				Result: scorer.Degraded(errors.New("timeout")),
			},
		},
	}

	var b strings.Builder
	if err := WriteReport(&b, report); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	output := b.String()

	expected := []string{
		"[*] News posted after: 2025-03-14 11:30:00 UTC",
		"    - Wire: Found 2 new articles. (1 filtered)",
		"    - Down: ERROR: HTTP error: 503 Service Unavailable",
		"Found 2 articles in last 30 mins:",
		"[Wire] Company X beats",
		"   Score: 8  Category: Earnings  Structural: true",
		"   Score: unscored",
		"   Reasoning: Analysis failed: timeout",
		"   Link: https://example.com/x",
		"   Time: 11:50:00 UTC",
	}
	for _, line := range expected {
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain %q, got:\n%s", line, output)
		}
	}
}

func TestWriteReportEmpty(t *testing.T) {
	report := Report{
		GeneratedAt: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Minutes:     15,
		Sources:     []feed.SourceReport{{Source: "Wire"}},
	}

	var b strings.Builder
	if err := WriteReport(&b, report); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(b.String(), "[OK] No news in the last 15 minutes.") {
		t.Errorf("Expected empty notice, got:\n%s", b.String())
	}
}
