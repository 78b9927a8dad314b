package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job runs one pass and reports how many items it handled.
type Job func(ctx context.Context) (int, error)

type Task struct {
	Name     string
	Interval time.Duration
	// Timeout bounds a single pass. Zero means Interval.
	Timeout time.Duration
	Run     Job
}

// Runner drives each task on its own ticker until Stop is called.
type Runner struct {
	tasks  []Task
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(logger *slog.Logger, tasks ...Task) *Runner {
	return &Runner{tasks: tasks, logger: logger}
}

func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	for _, task := range r.tasks {
		if task.Interval <= 0 {
			r.logger.Info("worker disabled", "task", task.Name)
			continue
		}
		r.wg.Add(1)
		go func(task Task) {
			defer r.wg.Done()
			r.loop(ctx, task)
		}(task)
	}
}

// Stop cancels running passes and waits for every loop to return.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) loop(ctx context.Context, task Task) {
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	r.logger.Info("worker started", "task", task.Name, "interval", task.Interval.String())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("worker stopped", "task", task.Name)
			return
		case <-ticker.C:
			RunOnce(ctx, r.logger, task)
		}
	}
}

// RunOnce executes a single pass of task under its timeout.
func RunOnce(ctx context.Context, logger *slog.Logger, task Task) (int, error) {
	timeout := task.Timeout
	if timeout <= 0 {
		timeout = task.Interval
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	n, err := task.Run(ctx)
	if err != nil {
		logger.Error("worker pass failed", "task", task.Name, "handled", n, "error", err.Error())
		return n, err
	}
	if n > 0 {
		logger.Info("worker pass completed", "task", task.Name, "handled", n)
	}
	return n, nil
}
