package notify

import (
	"context"
	"encoding/json"

	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"
)

// OutboxPublisher stores events as queued notification jobs. It is used when
// no message broker is configured.
type OutboxPublisher struct {
	jobs shared.NotificationRepository
}

func NewOutboxPublisher(jobs shared.NotificationRepository) *OutboxPublisher {
	return &OutboxPublisher{jobs: jobs}
}

func (p *OutboxPublisher) Publish(ctx context.Context, evt shared.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return errs.Wrap(err, "marshal event payload")
	}
	return p.jobs.CreateJob(ctx, evt.Kind, evt.Topic, payload, evt.OccurredAt)
}
