package radar

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/market-radar/app/feed"
	"github.com/lysyi3m/market-radar/app/scorer"
	"github.com/lysyi3m/market-radar/app/tasks"
)

type Collector interface {
	FetchRecent(ctx context.Context, sources []feed.Source, minutesBack int) ([]feed.Article, []feed.SourceReport)
}

var _ Collector = (*feed.Collector)(nil)

type ScoredArticle struct {
	feed.Article
	Result scorer.Result `json:"result"`
}

type Report struct {
	GeneratedAt time.Time
	Minutes     int
	Sources     []feed.SourceReport
	Articles    []ScoredArticle
}

// Failed reports how many sources could not be fetched.
func (r Report) Failed() int {
	failed := 0
	for _, source := range r.Sources {
		if source.Err != nil {
			failed++
		}
	}
	return failed
}

type Pipeline struct {
	collector Collector
	scorer    *scorer.Scorer
	runner    tasks.TaskRunnerInterface
	sources   []feed.Source
	fallback  bool
	now       func() time.Time
}

func NewPipeline(collector Collector, s *scorer.Scorer, runner tasks.TaskRunnerInterface, sources []feed.Source, fallback bool) *Pipeline {
	return &Pipeline{
		collector: collector,
		scorer:    s,
		runner:    runner,
		sources:   append([]feed.Source(nil), sources...),
		fallback:  fallback,
		now:       time.Now,
	}
}

func (p *Pipeline) Sources() []feed.Source {
	return append([]feed.Source(nil), p.sources...)
}

// Run collects recent articles and scores each of them. Articles keep the
// collector's newest-first order regardless of scoring completion order.
func (p *Pipeline) Run(ctx context.Context, minutes int) Report {
	report := Report{
		GeneratedAt: p.now().UTC(),
		Minutes:     minutes,
	}

	articles, sources := p.collector.FetchRecent(ctx, p.sources, minutes)
	report.Sources = sources

	scoreTasks := make([]*tasks.ScoreArticleTask, len(articles))
	batch := make([]tasks.TaskInterface, len(articles))
	for i, article := range articles {
		scoreTasks[i] = tasks.NewScoreArticleTask(article, p.scorer, p.fallback)
		batch[i] = scoreTasks[i]
	}

	errs := p.runner.Run(ctx, batch)

	report.Articles = make([]ScoredArticle, len(articles))
	scored := 0
	for i, task := range scoreTasks {
		result := task.Result
		if !result.Scored && result.Reasoning == "" && errs[i] != nil {
			result = scorer.Degraded(errs[i])
		}
		if result.Scored {
			scored++
		}
		report.Articles[i] = ScoredArticle{Article: task.Article, Result: result}
	}

	slog.Info("Radar run completed",
		"minutes", minutes,
		"sources", len(sources),
		"failed_sources", report.Failed(),
		"articles", len(articles),
		"scored", scored)

	return report
}
