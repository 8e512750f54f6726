package notify

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase/shared"
)

// Sink receives encoded job payloads. *mq.Publisher satisfies it.
type Sink interface {
	PublishRaw(ctx context.Context, kind string, body []byte, at time.Time) error
}

// Relay moves queued notification jobs to the broker.
type Relay struct {
	uow         shared.UnitOfWork
	sink        Sink
	clock       clock.Clock
	logger      *slog.Logger
	batchSize   int
	interval    time.Duration
	maxAttempts int
	retryDelay  time.Duration
}

type RelayOption func(*Relay)

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) { r.batchSize = n }
}

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) { r.interval = d }
}

func WithMaxAttempts(n int) RelayOption {
	return func(r *Relay) { r.maxAttempts = n }
}

func NewRelay(uow shared.UnitOfWork, sink Sink, clk clock.Clock, logger *slog.Logger, opts ...RelayOption) *Relay {
	r := &Relay{
		uow:         uow,
		sink:        sink,
		clock:       clk,
		logger:      logger,
		batchSize:   50,
		interval:    2 * time.Second,
		maxAttempts: 5,
		retryDelay:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drains due jobs every interval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("notification relay failed", "error", err.Error())
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Drain relays one batch and returns the number of delivered jobs.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	delivered := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		delivered = 0
		now := r.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, now, r.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if err := r.sink.PublishRaw(ctx, job.Kind, job.Payload, job.RunAt); err != nil {
				if markErr := tx.Notifications().MarkFailed(ctx, job.ID, err.Error(), r.nextAttempt(job, now), now); markErr != nil {
					return markErr
				}
				r.logger.Warn("notification delivery failed",
					"job_id", job.ID.String(),
					"kind", job.Kind,
					"attempt", job.Attempts+1,
					"error", err.Error())
				continue
			}
			if err := tx.Notifications().MarkDone(ctx, job.ID, now); err != nil {
				return err
			}
			delivered++
		}
		return nil
	})
	return delivered, err
}

func (r *Relay) nextAttempt(job shared.NotificationJob, now time.Time) *time.Time {
	if job.Attempts+1 >= r.maxAttempts {
		return nil
	}
	at := now.Add(time.Duration(job.Attempts+1) * r.retryDelay)
	return &at
}
