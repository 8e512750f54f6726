//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/slot"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CourtID     int64
	Date        slot.Date
	Hour        int
	OwnerID     uuid.UUID
	EntryTypeID int64
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CourtID:     1,
		Date:        slot.NewDate(2099, time.May, 1),
		Hour:        10,
		OwnerID:     uuid.New(),
		EntryTypeID: 1,
		CreatedAt:   time.Date(2099, time.April, 30, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithSlot(courtID int64, date slot.Date, hour int) *BookingBuilder {
	b.CourtID = courtID
	b.Date = date
	b.Hour = hour
	return b
}

func (b *BookingBuilder) WithOwner(ownerID uuid.UUID) *BookingBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithEntryType(id int64) *BookingBuilder {
	b.EntryTypeID = id
	return b
}

// Build methods
func (b *BookingBuilder) BuildSlot() slot.Identity {
	return slot.Identity{CourtID: b.CourtID, Date: b.Date, Hour: b.Hour}
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(b.BuildSlot(), b.OwnerID, b.EntryTypeID, b.CreatedAt)
}

func (b *BookingBuilder) BuildCommand() commands.ReserveRequest {
	return commands.ReserveRequest{
		Slot:        b.BuildSlot(),
		EntryTypeID: b.EntryTypeID,
	}
}

func (b *BookingBuilder) BuildDTO() reqdto.ReserveRequest {
	hour := b.Hour
	return reqdto.ReserveRequest{
		CourtID:     b.CourtID,
		Date:        b.Date.String(),
		Hour:        &hour,
		EntryTypeID: b.EntryTypeID,
	}
}
