package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type indexResult struct {
	index int
	err   error
}

func (r *indexResult) Err() error { return r.err }

type indexJob struct {
	index   int
	delay   time.Duration
	running *int32
	peak    *int32
}

func (j *indexJob) Execute(ctx context.Context) Result {
	if j.running != nil {
		now := atomic.AddInt32(j.running, 1)
		for {
			old := atomic.LoadInt32(j.peak)
			if now <= old || atomic.CompareAndSwapInt32(j.peak, old, now) {
				break
			}
		}
		defer atomic.AddInt32(j.running, -1)
	}
	if j.delay > 0 {
		time.Sleep(j.delay)
	}
	return &indexResult{index: j.index}
}

func TestPoolRun_PreservesOrder(t *testing.T) {
	jobs := make([]Job, 20)
	for i := range jobs {
		// Later jobs finish first so completion order inverts input order.
		jobs[i] = &indexJob{index: i, delay: time.Duration(20-i) * time.Millisecond}
	}

	results := NewPool(8).Run(context.Background(), jobs)
	if len(results) != len(jobs) {
		t.Fatalf("Expected %d results, got %d", len(jobs), len(results))
	}
	for i, r := range results {
		ir, ok := r.(*indexResult)
		if !ok {
			t.Fatalf("Result %d missing", i)
		}
		if ir.index != i {
			t.Errorf("Result %d: expected job %d, got %d", i, i, ir.index)
		}
	}
}

func TestPoolRun_BoundedConcurrency(t *testing.T) {
	var running, peak int32
	jobs := make([]Job, 30)
	for i := range jobs {
		jobs[i] = &indexJob{index: i, delay: 5 * time.Millisecond, running: &running, peak: &peak}
	}

	NewPool(4).Run(context.Background(), jobs)
	if got := atomic.LoadInt32(&peak); got > 4 {
		t.Errorf("Expected at most 4 concurrent jobs, observed %d", got)
	}
}

func TestPoolRun_EmptyJobs(t *testing.T) {
	results := NewPool(4).Run(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results for no jobs, got %d", len(results))
	}
}

func TestPoolRun_ZeroWorkersClamped(t *testing.T) {
	jobs := []Job{&indexJob{index: 0}}
	results := NewPool(0).Run(context.Background(), jobs)
	if results[0] == nil {
		t.Error("Expected a single-worker pool to still run the job")
	}
}

func TestPoolRun_CancellationLeavesNilSlots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = &indexJob{index: i}
	}
	results := NewPool(2).Run(ctx, jobs)

	if len(results) != len(jobs) {
		t.Fatalf("Expected a positionally aligned slice, got %d", len(results))
	}
	nils := 0
	for _, r := range results {
		if r == nil {
			nils++
		}
	}
	if nils == 0 {
		t.Error("Expected unstarted jobs to leave nil slots after cancellation")
	}
}

func TestFileResult_Err(t *testing.T) {
	ok := &FileResult{Path: "a.txt"}
	if ok.Err() != nil {
		t.Error("Expected nil error for a successful result")
	}
	bad := &FileResult{Path: "b.txt", Error: fmt.Errorf("boom")}
	if bad.Err() == nil {
		t.Error("Expected the stored error to surface through Err")
	}
}
