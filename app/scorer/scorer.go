package scorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/market-radar/app/metrics"
)

// Scorer rates articles against the investment rubric. Every call targets a
// single model; moving to another candidate is left to Fallback or the caller.
type Scorer struct {
	completer Completer
	models    []string
	metrics   *metrics.Metrics
}

// NewScorer takes the candidate models in preference order. m may be nil.
func NewScorer(completer Completer, models []string, m *metrics.Metrics) (*Scorer, error) {
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	if len(models) == 0 {
		return nil, errors.New("at least one model is required")
	}

	return &Scorer{
		completer: completer,
		models:    append([]string(nil), models...),
		metrics:   m,
	}, nil
}

func (s *Scorer) Models() []string {
	return append([]string(nil), s.models...)
}

func (s *Scorer) DefaultModel() string {
	return s.models[0]
}

// Score sends exactly one request to model. Failures come back as *Error.
func (s *Scorer) Score(ctx context.Context, model, title, summary string) (Result, error) {
	start := time.Now()

	result, err := s.score(ctx, model, title, summary)

	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	s.metrics.ObserveScoring(model, outcome, time.Since(start))

	return result, err
}

// Analyze scores against the default model and never fails: any error is
// folded into a degraded Result with Scored set to false.
func (s *Scorer) Analyze(ctx context.Context, title, summary string) Result {
	result, err := s.Score(ctx, s.DefaultModel(), title, summary)
	if err != nil {
		slog.Warn("Article scoring failed", "model", s.DefaultModel(), "title", title, "error", err)
		return Degraded(err)
	}
	return result
}

func (s *Scorer) score(ctx context.Context, model, title, summary string) (Result, error) {
	content, err := s.complete(ctx, model, UserMessage(title, summary))
	if err != nil {
		var scoreErr *Error
		if errors.As(err, &scoreErr) {
			return Result{}, scoreErr
		}
		return Result{}, &Error{Kind: KindOf(err), Model: model, Err: err}
	}

	result, err := ParseResponse(content)
	if err != nil {
		return Result{}, &Error{Kind: KindMalformed, Model: model, Err: err}
	}

	result.Model = model
	result.Scored = true

	return result, nil
}

func (s *Scorer) complete(ctx context.Context, model, user string) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Kind: KindTransport, Model: model, Err: fmt.Errorf("completer panic: %v", r)}
		}
	}()

	return s.completer.Complete(ctx, model, SystemPrompt, user)
}
