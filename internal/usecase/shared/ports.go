package shared

import (
	"context"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/member"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound = errs.New("member not found")
	ErrMemberDisabled = errs.New("member disabled")
)

// SlotStore is durable keyed storage of live bookings.
// InsertIfAbsent and DeleteIfExists must be atomic per slot identity.
type SlotStore interface {
	// InsertIfAbsent returns false when a booking already occupies the slot.
	InsertIfAbsent(ctx context.Context, b *booking.Booking) (bool, error)
	// DeleteIfExists returns false when the slot was already free.
	DeleteIfExists(ctx context.Context, s slot.Identity) (bool, error)
	// Get returns nil, nil for a free slot.
	Get(ctx context.Context, s slot.Identity) (*booking.Booking, error)
	// ListFrom returns bookings at or after (date, hour) ordered by date, hour, court.
	ListFrom(ctx context.Context, date slot.Date, hour int) ([]*booking.Booking, error)
	ListByCourtAndDate(ctx context.Context, courtID int64, date slot.Date) ([]*booking.Booking, error)
	CountByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date slot.Date) (int, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

// MemberDirectory resolves the acting member and its booking count.
type MemberDirectory interface {
	Resolve(ctx context.Context, memberID uuid.UUID) (*member.Member, error)
	CountLiveBookings(ctx context.Context, memberID uuid.UUID, date slot.Date) (int, error)
}

type Catalog interface {
	CourtExists(ctx context.Context, id int64) (bool, error)
	EntryTypeExists(ctx context.Context, id int64) (bool, error)
	ListCourts(ctx context.Context) ([]court.Court, error)
	ListEntryTypes(ctx context.Context) ([]court.EntryType, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
