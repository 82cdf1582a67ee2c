package renderer

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Task is a contiguous range [Begin, End) of iterations owned by one worker
type Task struct {
	WorkerID int
	Begin    int64
	End      int64
}

// Len returns the number of iterations in the task
func (t Task) Len() int64 {
	return t.End - t.Begin
}

// TaskResult reports the outcome of a task
type TaskResult struct {
	WorkerID int
	Error    error
}

// WorkFunc runs the iterations of one task. Tasks with the same WorkerID are never
// run concurrently, so per-worker state indexed by WorkerID needs no locking.
type WorkFunc func(ctx context.Context, task Task) error

// WorkerPool runs a fixed iteration space split statically across its workers.
// The partition depends only on the iteration count and the number of workers,
// so a render is reproducible for a fixed seed and thread count.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Partition splits total iterations into numWorkers contiguous tasks whose sizes differ by at most one
func Partition(total int64, numWorkers int) []Task {
	tasks := make([]Task, numWorkers)
	per := total / int64(numWorkers)
	extra := total % int64(numWorkers)
	begin := int64(0)
	for i := range tasks {
		size := per
		if int64(i) < extra {
			size++
		}
		tasks[i] = Task{WorkerID: i, Begin: begin, End: begin + size}
		begin += size
	}
	return tasks
}

// Run executes total iterations and returns once every worker has finished.
// Errors from all workers are joined.
func (wp *WorkerPool) Run(ctx context.Context, total int64, work WorkFunc) error {
	tasks := Partition(total, wp.numWorkers)
	taskQueue := make(chan Task, len(tasks))
	resultQueue := make(chan TaskResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < wp.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskQueue {
				resultQueue <- TaskResult{WorkerID: task.WorkerID, Error: work(ctx, task)}
			}
		}()
	}

	for _, task := range tasks {
		taskQueue <- task
	}
	close(taskQueue)
	wg.Wait()
	close(resultQueue)

	var errs []error
	for result := range resultQueue {
		if result.Error != nil {
			errs = append(errs, result.Error)
		}
	}
	return errors.Join(errs...)
}

// Cancellation is polled once per this many iterations
const cancelCheckInterval = 4096

func canceled(ctx context.Context, i int64) error {
	if i%cancelCheckInterval == 0 {
		return ctx.Err()
	}
	return nil
}
