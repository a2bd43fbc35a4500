package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/market-radar/app/feed"
	"github.com/lysyi3m/market-radar/app/scorer"
)

var ErrNotScored = errors.New("article not scored")

// ScoreArticleTask scores one article. Result is always set after Execute,
// degraded when scoring failed.
type ScoreArticleTask struct {
	Task
	Article  feed.Article
	Result   scorer.Result
	scorer   *scorer.Scorer
	fallback bool
}

func NewScoreArticleTask(article feed.Article, s *scorer.Scorer, fallback bool) *ScoreArticleTask {
	return &ScoreArticleTask{
		Task:     NewTask(TaskTypeScoreArticle, article.Title),
		Article:  article,
		scorer:   s,
		fallback: fallback,
	}
}

func (t *ScoreArticleTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		t.Result = scorer.Degraded(ctx.Err())
		return ctx.Err()
	default:
	}

	var err error
	if t.fallback {
		chain := scorer.NewFallback(t.scorer.Models(), scorer.DefaultShouldAdvance)
		t.Result, err = chain.Run(ctx, t.scorer, t.Article.Title, t.Article.Summary)
	} else {
		t.Result = t.scorer.Analyze(ctx, t.Article.Title, t.Article.Summary)
		if !t.Result.Scored {
			err = fmt.Errorf("%w: %s", ErrNotScored, t.Result.Reasoning)
		}
	}

	slog.Debug("Task completed",
		"type", string(t.Type),
		"source", t.Article.Source,
		"title", t.Article.Title,
		"model", t.Result.Model,
		"score", t.Result.Score,
		"scored", t.Result.Scored,
		"duration", t.GetDuration())

	return err
}
