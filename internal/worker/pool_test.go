package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSubmitRunsCallback(t *testing.T) {
	p := New(2, nil, nil)
	defer p.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() { wg.Done() })

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("callback never ran")
	}
}

func TestSubmitRecoversPanic(t *testing.T) {
	p := New(1, nil, nil)
	defer p.Stop()

	var wg sync.WaitGroup
	wg.Add(2)
	p.Submit(func() { defer wg.Done(); panic("boom") })
	p.Submit(func() { defer wg.Done() })

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("worker did not survive panic and keep processing")
	}
}

func TestSubmitDoesNotBlockWhileWorkerIsBusy(t *testing.T) {
	p := New(1, nil, nil)
	defer p.Stop()

	blocking := make(chan struct{})
	p.Submit(func() { <-blocking })

	submitted := make(chan struct{})
	go func() {
		// The single worker is stuck in the job above; a second Submit must
		// still return immediately instead of waiting for a free worker.
		p.Submit(func() {})
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatalf("Submit blocked the caller while the worker was busy")
	}

	close(blocking)
}

type driveableFunc func(ctx context.Context) error

func (f driveableFunc) Drive(ctx context.Context) error { return f(ctx) }

func TestSubmitDriveableRunsOnAsyncRunner(t *testing.T) {
	var mu sync.Mutex
	var gotErr error
	errCh := make(chan struct{})

	p := New(1, nil, func(err error) {
		mu.Lock()
		gotErr = err
		mu.Unlock()
		close(errCh)
	})
	defer p.Stop()

	p.SubmitDriveable(func() any {
		return driveableFunc(func(ctx context.Context) error {
			return errors.New("driveable failed")
		})
	})

	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatalf("driveable never ran")
	}

	mu.Lock()
	defer mu.Unlock()
	if gotErr == nil || gotErr.Error() != "driveable failed" {
		t.Fatalf("gotErr = %v, want driveable failed", gotErr)
	}
}
