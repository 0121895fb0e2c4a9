package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type SignalRefresher interface {
	RefreshSignal(ctx context.Context) error
}

// RefreshJob re-fetches snapshots and regenerates the brief on a fixed
// interval so client requests stay on the fast path.
type RefreshJob struct {
	tracer       trace.Tracer
	refresher    SignalRefresher
	pollInterval time.Duration
}

func NewRefreshJob(tracer trace.Tracer, refresher SignalRefresher, pollInterval time.Duration) *RefreshJob {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Minute
	}
	return &RefreshJob{tracer: tracer, refresher: refresher, pollInterval: pollInterval}
}

func (j *RefreshJob) Start(ctx context.Context) {
	if j.refresher == nil {
		log.Println("Signal refresh job disabled: no refresher")
		<-ctx.Done()
		return
	}

	j.runOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *RefreshJob) runOnce(ctx context.Context) {
	ctx, span := j.tracer.Start(ctx, "refresh-job.run-once")
	defer span.End()

	if err := j.refresher.RefreshSignal(ctx); err != nil {
		log.Printf("Signal refresh cycle error: %v", err)
	}
}
