package radar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteReport prints a human-readable summary of a run.
func WriteReport(w io.Writer, report Report) error {
	var b strings.Builder

	cutoff := report.GeneratedAt.Add(-minutesDuration(report.Minutes))
	fmt.Fprintf(&b, "[*] News posted after: %s\n", cutoff.Format("2006-01-02 15:04:05 UTC"))

	for _, source := range report.Sources {
		if source.Err != nil {
			fmt.Fprintf(&b, "    - %s: ERROR: %v\n", source.Source, source.Err)
			continue
		}
		fmt.Fprintf(&b, "    - %s: Found %d new articles.", source.Source, source.Count)
		if source.Filtered > 0 {
			fmt.Fprintf(&b, " (%d filtered)", source.Filtered)
		}
		b.WriteString("\n")
	}

	if len(report.Articles) == 0 {
		fmt.Fprintf(&b, "\n[OK] No news in the last %d minutes.\n", report.Minutes)
		_, err := io.WriteString(w, b.String())
		return err
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "\n%s\nFound %d articles in last %d mins:\n%s\n", rule, len(report.Articles), report.Minutes, rule)

	for _, article := range report.Articles {
		fmt.Fprintf(&b, "[%s] %s\n", article.Source, article.Title)
		if article.Result.Scored {
			fmt.Fprintf(&b, "   Score: %d  Category: %s  Structural: %t\n",
				article.Result.Score, article.Result.Category, article.Result.IsStructural)
		} else {
			fmt.Fprintf(&b, "   Score: unscored\n")
		}
		fmt.Fprintf(&b, "   Reasoning: %s\n", article.Result.Reasoning)
		fmt.Fprintf(&b, "   Link: %s\n", article.URL)
		fmt.Fprintf(&b, "   Time: %s\n\n", article.PublishedAt.UTC().Format("15:04:05 UTC"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func minutesDuration(minutes int) time.Duration {
	return time.Duration(max(minutes, 0)) * time.Minute
}
