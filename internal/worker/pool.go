// Package worker runs independent jobs over a bounded pool of
// goroutines. Unlike a free-running queue, Run takes the whole job slice
// up front and returns results positionally aligned with it, which is
// the ordering contract batch operations elsewhere rely on.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	Err() error
}

// Pool executes job slices with bounded parallelism
type Pool struct {
	workers int
}

// NewPool creates a pool of the given width.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns results where results[i] belongs to
// jobs[i] regardless of completion order. On cancellation, jobs not yet
// started leave a nil slot; finished results stay valid.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indices {
				results[idx] = jobs[idx].Execute(ctx)
			}
		}()
	}

	for i := range jobs {
		select {
		case <-ctx.Done():
			close(indices)
			wg.Wait()
			return results
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	return results
}
