package bootstrap

import (
	"context"
	"log/slog"

	"court-booking/internal/infra/mq"
	"court-booking/internal/infra/notify"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher publishes booking events straight to AMQP when a broker is
// configured and relays the outbox there. Without a broker events stay queued
// in notification_jobs for an external consumer.
func NewEventPublisher(
	lc fx.Lifecycle,
	cfg config.Config,
	jobs shared.NotificationRepository,
	uow shared.UnitOfWork,
	clk clock.Clock,
	logger *slog.Logger,
) (shared.EventPublisher, error) {
	if cfg.MQ.URL == "" {
		logger.Info("AMQP_URL not set, events are written to the notification outbox")
		return notify.NewOutboxPublisher(jobs), nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, err
	}

	relay := notify.NewRelay(uow, publisher, clk, logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return publisher.Close()
		},
	})

	return publisher, nil
}
