package tasks

import "context"

// TaskRunnerInterface runs a batch of tasks and reports one error per task,
// in input order.
// Example usage:
//
//	pool := NewPool(workerCount, taskTimeout)
//	errs := pool.Run(ctx, []TaskInterface{NewScoreArticleTask(article, s, true)})
type TaskRunnerInterface interface {
	Run(ctx context.Context, tasks []TaskInterface) []error
}

var _ TaskRunnerInterface = (*Pool)(nil)
