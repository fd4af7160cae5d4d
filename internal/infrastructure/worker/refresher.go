package worker

import (
	"context"
	"time"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"

	"go.uber.org/zap"
)

const DefaultMinWait = time.Second

var _ application.Worker = (*Refresher)(nil)

type timelineRefresher interface {
	Refresh(ctx context.Context) (domain.Timeline, error)
}

// Refresher rebuilds the widget timeline whenever its refresh deadline passes.
type Refresher struct {
	Svc timelineRefresher
	Log *zap.Logger

	// MinWait bounds how fast the loop spins when a timeline is already due.
	MinWait time.Duration
	now     func() time.Time
}

func (w *Refresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("worker", "refresher"))
	if w.MinWait <= 0 {
		w.MinWait = DefaultMinWait
	}
	if w.now == nil {
		w.now = time.Now
	}

	log.Info("refresher_started")
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("refresher_stopped")
			return
		case <-timer.C:
			timer.Reset(w.tick(ctx, log))
		}
	}
}

// tick refreshes once and returns how long to sleep until the next refresh.
func (w *Refresher) tick(ctx context.Context, log *zap.Logger) time.Duration {
	tl, err := w.Svc.Refresh(ctx)
	if err != nil {
		log.Warn("refresh_failed", zap.Error(err))
	}
	failed := false
	if e, ok := tl.Latest(); ok {
		failed = e.Failed
	}
	wait := tl.RefreshAfter.Sub(w.now())
	if wait < w.MinWait {
		wait = w.MinWait
	}
	log.Info("refresh_done",
		zap.Bool("failed", failed),
		zap.Time("refresh_after", tl.RefreshAfter),
		zap.Duration("next_in", wait),
	)
	return wait
}
