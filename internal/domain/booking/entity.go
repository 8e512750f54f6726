package booking

import (
	"errors"
	"time"

	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

var (
	ErrOwnerRequired     = errors.New("booking owner is required")
	ErrEntryTypeRequired = errors.New("entry type is required")
)

// Booking is a live reservation of exactly one slot.
type Booking struct {
	slot        slot.Identity
	ownerID     uuid.UUID
	entryTypeID int64
	createdAt   time.Time
}

func NewBooking(s slot.Identity, ownerID uuid.UUID, entryTypeID int64, now time.Time) (*Booking, error) {
	if ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	if entryTypeID <= 0 {
		return nil, ErrEntryTypeRequired
	}
	return &Booking{
		slot:        s,
		ownerID:     ownerID,
		entryTypeID: entryTypeID,
		createdAt:   now,
	}, nil
}

// ReconstructBooking rebuilds a booking loaded from storage.
func ReconstructBooking(s slot.Identity, ownerID uuid.UUID, entryTypeID int64, createdAt time.Time) *Booking {
	return &Booking{
		slot:        s,
		ownerID:     ownerID,
		entryTypeID: entryTypeID,
		createdAt:   createdAt,
	}
}

func (b *Booking) Slot() slot.Identity  { return b.slot }
func (b *Booking) OwnerID() uuid.UUID   { return b.ownerID }
func (b *Booking) EntryTypeID() int64   { return b.entryTypeID }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

func (b *Booking) IsOwnedBy(memberID uuid.UUID) bool {
	return b.ownerID == memberID
}
