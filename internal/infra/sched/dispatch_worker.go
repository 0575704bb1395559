package sched

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/infra/logging"
	"content-studio/internal/infra/worker"
	"content-studio/internal/usecase"
)

// DispatchWorker periodically publishes scheduled posts whose fire time has
// passed. Each due post becomes one pool task calling PostNow; the
// conditional status update makes this race-safe against a concurrent
// manual Post Now.
type DispatchWorker struct {
	interval time.Duration
	batch    int
	schedUC  usecase.ScheduleUseCase
	pool     *worker.Pool
	log      *zerolog.Logger
}

func NewDispatchWorker(interval time.Duration, batch int, schedUC usecase.ScheduleUseCase, pool *worker.Pool, logger *zerolog.Logger) *DispatchWorker {
	l := logger.With().Str("component", "dispatch_worker").Logger()
	if batch <= 0 {
		batch = 20
	}
	return &DispatchWorker{
		interval: interval,
		batch:    batch,
		schedUC:  schedUC,
		pool:     pool,
		log:      &l,
	}
}

func (w *DispatchWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting dispatch worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping dispatch worker")
			return ctx.Err()
		case <-ticker.C:
			w.dispatchDue(ctx)
		}
	}
}

func (w *DispatchWorker) dispatchDue(ctx context.Context) {
	due, err := w.schedUC.DuePosts(ctx, w.batch)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to list due posts")
		return
	}
	for _, post := range due {
		id := post.ID
		task := func(ctx context.Context) error {
			ctx = logging.WithPostID(ctx, id)
			_, err := w.schedUC.PostNow(ctx, id)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, domain.ErrConflict):
				// Someone else already transitioned it.
				return nil
			default:
				w.log.Warn().Err(err).Str("post_id", id).Msg("scheduled publish failed")
				return nil
			}
		}
		if err := w.pool.Submit(task); err != nil {
			w.log.Warn().Err(err).Str("post_id", id).Msg("dispatch skipped, pool saturated")
		}
	}
	if len(due) > 0 {
		w.log.Info().Int("count", len(due)).Msg("due posts dispatched")
	}
}
