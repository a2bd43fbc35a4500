package feed

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{
			name:  "tags stripped and both sentences kept",
			input: "<p>Company X beats earnings by 20%. Stock jumps.</p>",
			limit: 5,
			want:  "Company X beats earnings by 20%. Stock jumps.",
		},
		{
			name:  "whitespace collapsed",
			input: "  Rates \n\n held\tsteady.   Markets rallied!  ",
			limit: 5,
			want:  "Rates held steady. Markets rallied!",
		},
		{
			name:  "truncated to limit",
			input: "One. Two! Three? Four. Five. Six. Seven.",
			limit: 5,
			want:  "One. Two! Three? Four. Five.",
		},
		{
			name:  "punctuation without following space does not split",
			input: "Shares rose 2.5% to $10.20 today. Volume was heavy.",
			limit: 1,
			want:  "Shares rose 2.5% to $10.20 today.",
		},
		{
			name:  "abbreviation causes an accepted false break",
			input: "Apple Inc. reported revenue. Analysts cheered.",
			limit: 1,
			want:  "Apple Inc.",
		},
		{
			name:  "empty input",
			input: "",
			limit: 5,
			want:  "",
		},
		{
			name:  "markup only",
			input: "<div><br/><img src=\"x.png\"></div>",
			limit: 5,
			want:  "",
		},
		{
			name:  "zero limit",
			input: "Something happened.",
			limit: 0,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, tt.limit)
			if got != tt.want {
				t.Errorf("Normalize(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Company X beats earnings by 20%. Stock jumps.</p>",
		"One. Two! Three? Four. Five. Six. Seven.",
		"a < b and c > d. Then <<x>y>. Done.",
		"Plain text without punctuation",
		"<>empty angle brackets stay<>",
		"Ünïcödé   text. 株価が上昇した。 Next sentence!",
	}

	for _, input := range inputs {
		once := Normalize(input, SentenceLimit)
		twice := Normalize(once, SentenceLimit)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestSummarizeFallsBackToTitle(t *testing.T) {
	title := "Fed raises rates by 25bp"

	if got := Summarize(title, "<p>Read more</p>"); got != title {
		t.Errorf("Expected title fallback, got: %q", got)
	}

	if got := Summarize(title, ""); got != title {
		t.Errorf("Expected title fallback for empty body, got: %q", got)
	}

	body := "The Federal Reserve raised its benchmark rate by a quarter point on Wednesday."
	if got := Summarize(title, body); got != body {
		t.Errorf("Expected body summary, got: %q", got)
	}
}

func TestSummarizeThreshold(t *testing.T) {
	title := "Title"

	exactly := strings.Repeat("a", MinSummaryLength)
	if got := Summarize(title, exactly); got != exactly {
		t.Errorf("Expected %d-character body to be kept, got: %q", MinSummaryLength, got)
	}

	short := strings.Repeat("a", MinSummaryLength-1)
	if got := Summarize(title, short); got != title {
		t.Errorf("Expected %d-character body to fall back to title, got: %q", MinSummaryLength-1, got)
	}
}
