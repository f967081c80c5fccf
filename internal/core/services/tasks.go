package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is one unit of detached background work.
type Task struct {
	// Name identifies the task in logs.
	Name string

	// Run does the work. The context is the queue's own lifetime context,
	// not the one from whoever enqueued the task.
	Run func(ctx context.Context) error
}

// TaskQueue runs fire-and-forget work off the request path. Callers enqueue
// and return immediately; the queue owns failure logging, so a task's
// outcome is never reported back to the trigger.
type TaskQueue struct {
	tasks  chan Task
	logger *zap.Logger

	stop    context.CancelFunc
	stopped sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// NewTaskQueue starts a queue with the given buffer and worker count.
func NewTaskQueue(buffer, workers int, logger *zap.Logger) *TaskQueue {
	if buffer <= 0 {
		buffer = 16
	}
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &TaskQueue{
		tasks:  make(chan Task, buffer),
		logger: logger.Named("tasks"),
		stop:   cancel,
	}

	q.stopped.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker(ctx)
	}
	return q
}

// Enqueue schedules a task and returns immediately. Reports false when the
// queue is full or already shut down, so callers can surface a busy signal.
func (q *TaskQueue) Enqueue(task Task) bool {
	q.closeMu.Lock()
	defer q.closeMu.Unlock()
	if q.closed {
		return false
	}

	select {
	case q.tasks <- task:
		q.logger.Debug("task enqueued", zap.String("task", task.Name))
		return true
	default:
		q.logger.Warn("queue full, task rejected", zap.String("task", task.Name))
		return false
	}
}

// Shutdown stops accepting tasks, cancels running ones, and waits for the
// workers to exit.
func (q *TaskQueue) Shutdown() {
	q.closeMu.Lock()
	if q.closed {
		q.closeMu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.closeMu.Unlock()

	q.stop()
	q.stopped.Wait()
}

func (q *TaskQueue) worker(ctx context.Context) {
	defer q.stopped.Done()
	for task := range q.tasks {
		if ctx.Err() != nil {
			return
		}
		if err := task.Run(ctx); err != nil {
			q.logger.Error("task failed",
				zap.String("task", task.Name),
				zap.Error(err))
			continue
		}
		q.logger.Info("task finished", zap.String("task", task.Name))
	}
}
