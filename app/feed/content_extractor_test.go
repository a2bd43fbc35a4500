package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `
<!DOCTYPE html>
<html>
<head>
	<title>Test Article</title>
</head>
<body>
	<header>
		<h1>Site Header</h1>
		<nav>Navigation</nav>
	</header>
	<main>
		<article>
			<h1>Main Article Title</h1>
			<p>This is the main content of the article. It contains several paragraphs of meaningful text that should be extracted by the readability algorithm.</p>
			<p>This is another paragraph with more content. The readability algorithm should identify this as the main content area and extract it properly.</p>
			<p>Here is some more substantial content to ensure we meet the character threshold. This paragraph adds more context and information that would be valuable to readers.</p>
		</article>
	</main>
	<aside>
		<div>Advertisement</div>
		<div>Related Links</div>
	</aside>
	<footer>
		<p>Copyright 2024</p>
	</footer>
</body>
</html>
`

func TestContentExtractor_Run_ValidHTML(t *testing.T) {
	extractor := NewContentExtractor(nil)

	result, err := extractor.Run([]byte(articleHTML), "https://example.com/news/1")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "main content of the article") {
		t.Errorf("Expected extracted content to contain main article text")
	}

	if strings.Contains(result, "<p>") {
		t.Errorf("Expected plain text without markup, got: %s", result)
	}

	if strings.Contains(result, "Copyright 2024") {
		t.Errorf("Expected extracted content to exclude footer")
	}
}

func TestContentExtractor_Run_RelativeURL(t *testing.T) {
	extractor := NewContentExtractor(nil)

	result, err := extractor.Run([]byte(articleHTML), "not a url")

	if err != nil {
		t.Fatalf("Expected no error without a base URL, got: %v", err)
	}
	if result == "" {
		t.Error("Expected non-empty result")
	}
}

func TestContentExtractor_Run_EmptyData(t *testing.T) {
	extractor := NewContentExtractor(nil)

	for _, data := range [][]byte{nil, {}} {
		result, err := extractor.Run(data, "https://example.com")

		if err == nil {
			t.Fatal("Expected error for empty data")
		}
		if result != "" {
			t.Errorf("Expected empty result for empty data")
		}

		expectedError := "HTML data is empty"
		if err.Error() != expectedError {
			t.Errorf("Expected error message '%s', got '%s'", expectedError, err.Error())
		}
	}
}

func TestContentExtractor_Extract(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.Client(), NewParser(), "Market Radar Test")
	extractor := NewContentExtractor(fetcher)

	result, err := extractor.Extract(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(result, "another paragraph with more content") {
		t.Errorf("Expected extracted content to contain article text, got: %s", result)
	}
	if userAgent != "Market Radar Test" {
		t.Errorf("Expected user agent 'Market Radar Test', got: %s", userAgent)
	}

	if _, err := extractor.Extract(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("Expected error for HTTP 404")
	}
}
