package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	count := 10
	for i := 0; i < count; i++ {
		pool.Submit(&mockJob{executed: &executed})
	}

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executions, got %d", count, executed)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := NewPool(workers)
	pool.Start()

	var mu sync.Mutex
	current, peak := 0, 0

	for i := 0; i < 12; i++ {
		pool.Submit(&trackingJob{
			start: func() {
				mu.Lock()
				current++
				if current > peak {
					peak = current
				}
				mu.Unlock()
			},
			end: func() {
				mu.Lock()
				current--
				mu.Unlock()
			},
		})
	}

	pool.Wait()

	if peak > workers {
		t.Errorf("expected at most %d concurrent jobs, observed %d", workers, peak)
	}
}

type trackingJob struct {
	start func()
	end   func()
}

func (j *trackingJob) Execute(ctx context.Context) Result {
	j.start()
	time.Sleep(5 * time.Millisecond)
	j.end()
	return &mockResult{}
}

func TestPool_ErrorsAreResults(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&mockJob{shouldErr: true})
	pool.Submit(&mockJob{})

	results := pool.Wait()

	errCount := 0
	for _, r := range results {
		if r.GetError() != nil {
			errCount++
		}
	}
	if errCount != 1 {
		t.Errorf("expected exactly 1 error result, got %d", errCount)
	}
}
