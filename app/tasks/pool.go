package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultTaskTimeout = 5 * time.Minute

// Pool runs a batch of independent tasks on a fixed number of workers. A
// failing task never cancels its siblings.
type Pool struct {
	workerCount int
	taskTimeout time.Duration
}

func NewPool(workerCount int, taskTimeout time.Duration) *Pool {
	if taskTimeout <= 0 {
		taskTimeout = DefaultTaskTimeout
	}

	return &Pool{
		workerCount: max(workerCount, 1),
		taskTimeout: taskTimeout,
	}
}

// Run executes every task and returns their errors in input order. Tasks
// still queued when ctx is done are not started and report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []TaskInterface) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	queue := make(chan int, len(tasks))
	for i := range tasks {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for id := range min(p.workerCount, len(tasks)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = p.executeTask(ctx, id, tasks[i])
			}
		}()
	}
	wg.Wait()

	return errs
}

func (p *Pool) executeTask(ctx context.Context, workerID int, task TaskInterface) error {
	task.Start()

	taskCtx, cancel := context.WithTimeout(ctx, p.taskTimeout)
	defer cancel()

	err := task.Execute(taskCtx)
	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "subject", task.GetSubject(), "duration", task.GetDuration(), "error", err)
	}

	return err
}
