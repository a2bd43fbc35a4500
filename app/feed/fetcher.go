package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetcher retrieves and parses the entries of a single feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]Entry, error)
}

var _ Fetcher = (*HTTPFetcher)(nil)

type HTTPFetcher struct {
	httpClient *http.Client
	parser     *Parser
	userAgent  string
}

func NewHTTPFetcher(httpClient *http.Client, parser *Parser, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: httpClient,
		parser:     parser,
		userAgent:  userAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]Entry, error) {
	data, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	entries, err := f.parser.Run(data)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (f *HTTPFetcher) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
