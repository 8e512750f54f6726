package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/member"

	"github.com/google/uuid"
)

// UnitOfWork runs member and outbox writes in one transaction. fn may run more
// than once when the transaction hits a serialization failure or deadlock.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Members() MemberRepository
	Notifications() NotificationRepository
}

type MemberRepository interface {
	Create(ctx context.Context, mem *member.Member) error
	Update(ctx context.Context, mem *member.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*member.Member, error)
	FindByEmail(ctx context.Context, email string) (*member.Member, error)
	FindByVerificationToken(ctx context.Context, token string) (*member.Member, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimDue locks up to limit queued jobs whose run_at has passed. Rows locked
	// by another transaction are skipped.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkDone(ctx context.Context, id uuid.UUID, now time.Time) error
	// MarkFailed requeues the job at retryAt, or fails it for good when retryAt is nil.
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt *time.Time, now time.Time) error
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
}
