package scorer

import (
	"context"
	"errors"
	"log/slog"
)

type State int

const (
	StateTrying State = iota
	StateSucceeded
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateTrying:
		return "trying"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// AdvancePolicy decides whether a failed attempt should move on to the next
// candidate model.
type AdvancePolicy func(err error) bool

// DefaultShouldAdvance moves on when another model could plausibly succeed.
// Authentication and request errors would fail identically on every model.
func DefaultShouldAdvance(err error) bool {
	switch KindOf(err) {
	case KindAuth, KindBadRequest, KindCanceled:
		return false
	default:
		return true
	}
}

type Attempt struct {
	Model string
	Err   error
}

// Fallback walks an ordered list of candidate models for one article:
// trying(i) -> succeeded, trying(i) -> trying(i+1) when the policy advances,
// and trying(i) -> exhausted otherwise or after the last candidate.
// A Fallback is single-use.
type Fallback struct {
	models        []string
	shouldAdvance AdvancePolicy
	state         State
	index         int
	attempts      []Attempt
}

func NewFallback(models []string, shouldAdvance AdvancePolicy) *Fallback {
	if shouldAdvance == nil {
		shouldAdvance = DefaultShouldAdvance
	}

	f := &Fallback{
		models:        append([]string(nil), models...),
		shouldAdvance: shouldAdvance,
	}
	if len(f.models) == 0 {
		f.state = StateExhausted
	}
	return f
}

func (f *Fallback) State() State {
	return f.state
}

// Current returns the model under trial; ok is false once the run is over.
func (f *Fallback) Current() (model string, ok bool) {
	if f.state != StateTrying {
		return "", false
	}
	return f.models[f.index], true
}

// Record feeds the outcome of the current attempt into the state machine.
func (f *Fallback) Record(err error) State {
	if f.state != StateTrying {
		return f.state
	}

	if err == nil {
		f.state = StateSucceeded
		return f.state
	}

	f.attempts = append(f.attempts, Attempt{Model: f.models[f.index], Err: err})

	if !f.shouldAdvance(err) || f.index+1 >= len(f.models) {
		f.state = StateExhausted
		return f.state
	}

	f.index++
	return f.state
}

func (f *Fallback) Attempts() []Attempt {
	return append([]Attempt(nil), f.attempts...)
}

// Err returns every failed attempt joined, or nil when none failed.
func (f *Fallback) Err() error {
	errs := make([]error, 0, len(f.attempts))
	for _, attempt := range f.attempts {
		errs = append(errs, attempt.Err)
	}
	return errors.Join(errs...)
}

// Run scores the article, advancing through candidates until one succeeds or
// the policy gives up. On failure the returned Result is degraded and err is
// the last attempt's error.
func (f *Fallback) Run(ctx context.Context, s *Scorer, title, summary string) (Result, error) {
	for {
		model, ok := f.Current()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			f.Record(&Error{Kind: KindOf(err), Model: model, Err: err})
			break
		}

		result, err := s.Score(ctx, model, title, summary)
		switch f.Record(err) {
		case StateSucceeded:
			return result, nil
		case StateTrying:
			next, _ := f.Current()
			slog.Warn("Scoring failed, trying next model", "model", model, "next_model", next, "kind", KindOf(err), "error", err)
		}
	}

	lastErr := f.lastErr()
	slog.Warn("Scoring fallback exhausted", "title", title, "attempts", len(f.attempts), "errors", f.Err())
	return Degraded(lastErr), lastErr
}

func (f *Fallback) lastErr() error {
	if len(f.attempts) == 0 {
		return &Error{Kind: KindUnavailable, Err: errors.New("no candidate models")}
	}
	return f.attempts[len(f.attempts)-1].Err
}
