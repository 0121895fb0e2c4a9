package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type refresherTestStub struct {
	calls *int32
}

func (s *refresherTestStub) RefreshSignal(ctx context.Context) error {
	atomic.AddInt32(s.calls, 1)
	return nil
}

func TestRefreshJobRunsAtLeastOnce(t *testing.T) {
	var calls int32
	refresher := &refresherTestStub{calls: &calls}
	job := NewRefreshJob(trace.NewNoopTracerProvider().Tracer("test"), refresher, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	if atomic.LoadInt32(&calls) == 0 {
		t.Fatal("expected at least one refresh run")
	}
}

func TestRefreshJobTicks(t *testing.T) {
	var calls int32
	refresher := &refresherTestStub{calls: &calls}
	job := NewRefreshJob(trace.NewNoopTracerProvider().Tracer("test"), refresher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	if atomic.LoadInt32(&calls) < 2 {
		t.Fatalf("expected ticker reruns, got %d calls", atomic.LoadInt32(&calls))
	}
}

func TestRefreshJobDisabledWithoutRefresher(t *testing.T) {
	job := NewRefreshJob(trace.NewNoopTracerProvider().Tracer("test"), nil, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop on cancel")
	}
}

func TestRefreshJobDefaultInterval(t *testing.T) {
	job := NewRefreshJob(trace.NewNoopTracerProvider().Tracer("test"), nil, 0)
	if job.pollInterval != 5*time.Minute {
		t.Fatalf("expected 5m default, got %v", job.pollInterval)
	}
}
