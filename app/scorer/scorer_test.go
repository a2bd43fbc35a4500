package scorer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	model  string
	system string
	user   string
}

// fakeCompleter replies per model; models without a reply fail with a
// provider error.
type fakeCompleter struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	panics  bool
	calls   []call
}

func (f *fakeCompleter) Complete(ctx context.Context, model, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{model: model, system: system, user: user})
	f.mu.Unlock()

	if f.panics {
		panic("boom")
	}
	if err := f.errs[model]; err != nil {
		return "", err
	}
	if reply, ok := f.replies[model]; ok {
		return reply, nil
	}
	return "", &Error{Kind: KindProvider, Model: model, Err: errors.New("502 Bad Gateway")}
}

func (f *fakeCompleter) models() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	models := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		models = append(models, c.model)
	}
	return models
}

const validReply = `{"score": 9, "category": "Earnings", "reasoning": "Material beat.", "is_structural": true}`

func TestNewScorer(t *testing.T) {
	_, err := NewScorer(nil, []string{"m"}, nil)
	assert.Error(t, err)

	_, err = NewScorer(&fakeCompleter{}, nil, nil)
	assert.Error(t, err)

	s, err := NewScorer(&fakeCompleter{}, []string{"primary", "secondary"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "primary", s.DefaultModel())
	assert.Equal(t, []string{"primary", "secondary"}, s.Models())
}

func TestScorer_Score(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{"primary": validReply}}
	s, err := NewScorer(completer, []string{"primary"}, nil)
	require.NoError(t, err)

	result, err := s.Score(context.Background(), "primary", "X beats", "Company X beats earnings by 20%.")

	require.NoError(t, err)
	assert.True(t, result.Scored)
	assert.Equal(t, 9, result.Score)
	assert.Equal(t, "primary", result.Model)

	require.Len(t, completer.calls, 1)
	assert.Equal(t, SystemPrompt, completer.calls[0].system)
	assert.Equal(t, "Title: X beats\nSummary: Company X beats earnings by 20%.", completer.calls[0].user)
}

func TestScorer_ScoreMalformed(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{"primary": "Score: 9/10"}}
	s, err := NewScorer(completer, []string{"primary"}, nil)
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "primary", "t", "s")

	var scoreErr *Error
	require.ErrorAs(t, err, &scoreErr)
	assert.Equal(t, KindMalformed, scoreErr.Kind)
	assert.Equal(t, "primary", scoreErr.Model)
}

func TestScorer_ScoreWrapsUnclassifiedErrors(t *testing.T) {
	completer := &fakeCompleter{errs: map[string]error{"primary": context.DeadlineExceeded}}
	s, err := NewScorer(completer, []string{"primary"}, nil)
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "primary", "t", "s")

	assert.Equal(t, KindTimeout, KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScorer_AnalyzeDegradesOnFailure(t *testing.T) {
	s, err := NewScorer(&fakeCompleter{}, []string{"primary"}, nil)
	require.NoError(t, err)

	result := s.Analyze(context.Background(), "t", "s")

	assert.False(t, result.Scored)
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Reasoning, "Analysis failed")
	assert.Equal(t, "primary", result.Model)
}

func TestScorer_AnalyzeRecoversPanic(t *testing.T) {
	s, err := NewScorer(&fakeCompleter{panics: true}, []string{"primary"}, nil)
	require.NoError(t, err)

	var result Result
	assert.NotPanics(t, func() {
		result = s.Analyze(context.Background(), "t", "s")
	})
	assert.False(t, result.Scored)
	assert.Contains(t, result.Reasoning, "Analysis failed")
	assert.Contains(t, result.Reasoning, "boom")
}

func TestScorer_AnalyzeUsesDefaultModelOnly(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{"secondary": validReply}}
	s, err := NewScorer(completer, []string{"primary", "secondary"}, nil)
	require.NoError(t, err)

	result := s.Analyze(context.Background(), "t", "s")

	assert.False(t, result.Scored)
	assert.Equal(t, []string{"primary"}, completer.models())
}
