package scorer

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Result is the relevance assessment of one article. Scored is false for a
// degraded result, which distinguishes "could not be assessed" from a
// genuine zero.
type Result struct {
	Score        int    `json:"score"`
	Category     string `json:"category,omitempty"`
	Reasoning    string `json:"reasoning"`
	IsStructural bool   `json:"is_structural"`
	Model        string `json:"model,omitempty"`
	Scored       bool   `json:"scored"`
}

// Degraded converts a scoring failure into a zero-score result.
func Degraded(err error) Result {
	result := Result{
		Score:     0,
		Reasoning: fmt.Sprintf("Analysis failed: %v", err),
	}

	var scoreErr *Error
	if errors.As(err, &scoreErr) {
		result.Model = scoreErr.Model
	}

	return result
}

type Kind string

const (
	KindTransport   Kind = "transport"
	KindTimeout     Kind = "timeout"
	KindCanceled    Kind = "canceled"
	KindAuth        Kind = "auth"
	KindRateLimit   Kind = "rate_limit"
	KindUnavailable Kind = "unavailable"
	KindProvider    Kind = "provider"
	KindBadRequest  Kind = "bad_request"
	KindMalformed   Kind = "malformed"
	KindEmpty       Kind = "empty"
)

// Error is a classified scoring failure for a single model.
type Error struct {
	Kind  Kind
	Model string
	Err   error
}

func (e *Error) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s from %s: %v", e.Kind, e.Model, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the failure kind carried by err. Unclassified errors are
// treated as transport failures.
func KindOf(err error) Kind {
	var scoreErr *Error
	if errors.As(err, &scoreErr) {
		return scoreErr.Kind
	}

	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindTransport
}

// KindForStatus maps a provider HTTP status code to a failure kind.
func KindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	// OpenRouter answers 402 when credits for a paid model are exhausted.
	case status == 402 || status == 429:
		return KindRateLimit
	case status == 404:
		return KindUnavailable
	case status == 408:
		return KindTimeout
	case status >= 500:
		return KindProvider
	case status >= 400:
		return KindBadRequest
	default:
		return KindTransport
	}
}
