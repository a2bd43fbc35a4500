package scorer

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultTimeout = 60 * time.Second
)

var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY environment variable not set")

// Completer issues one chat completion against a single model and returns
// the raw assistant text.
type Completer interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

var _ Completer = (*OpenRouterClient)(nil)

type ClientConfig struct {
	APIKey  string
	BaseURL string
	Referer string
	Title   string
	Timeout time.Duration
}

// OpenRouterClient talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterClient struct {
	client *openai.Client
}

func NewOpenRouterClient(c ClientConfig) (*OpenRouterClient, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	headers := make(http.Header)
	if c.Referer != "" {
		headers.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		headers.Set("X-Title", c.Title)
	}

	config := openai.DefaultConfig(c.APIKey)
	config.BaseURL = cmp.Or(strings.TrimRight(c.BaseURL, "/"), DefaultBaseURL)
	config.HTTPClient = &http.Client{
		Timeout: cmp.Or(c.Timeout, DefaultTimeout),
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			headers: headers,
		},
	}

	return &OpenRouterClient{client: openai.NewClientWithConfig(config)}, nil
}

func (c *OpenRouterClient) Complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &Error{Kind: classify(err), Model: model, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindEmpty, Model: model, Err: errors.New("completion has no choices")}
	}

	return resp.Choices[0].Message.Content, nil
}

func classify(err error) Kind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return KindForStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return KindForStatus(reqErr.HTTPStatusCode)
	}

	return KindOf(err)
}

type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, values := range t.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return t.base.RoundTrip(req)
}
