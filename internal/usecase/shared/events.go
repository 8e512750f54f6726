package shared

import (
	"time"

	"court-booking/internal/domain/booking"

	"github.com/google/uuid"
)

const (
	EventBookingReserved     = "booking.reserved"
	EventBookingCancelled    = "booking.cancelled"
	EventMemberVerification  = "member.verification"
	TopicBookings            = "bookings"
	TopicMembers             = "members"
	NotificationStatusQueued = "queued"
	NotificationStatusDone   = "done"
	NotificationStatusFailed = "failed"
)

type Event struct {
	Kind       string
	Topic      string
	Payload    any
	OccurredAt time.Time
}

type BookingEventPayload struct {
	CourtID     int64     `json:"court_id"`
	Date        string    `json:"date"`
	Hour        int       `json:"hour"`
	EndHour     int       `json:"end_hour"`
	OwnerID     uuid.UUID `json:"owner_id"`
	EntryTypeID int64     `json:"entry_type_id"`
	ActorID     uuid.UUID `json:"actor_id"`
}

type VerificationPayload struct {
	MemberID  uuid.UUID `json:"member_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewBookingEvent(kind string, b *booking.Booking, actorID uuid.UUID, at time.Time) Event {
	s := b.Slot()
	return Event{
		Kind:  kind,
		Topic: TopicBookings,
		Payload: BookingEventPayload{
			CourtID:     s.CourtID,
			Date:        s.Date.String(),
			Hour:        s.Hour,
			EndHour:     s.Hour + 1,
			OwnerID:     b.OwnerID(),
			EntryTypeID: b.EntryTypeID(),
			ActorID:     actorID,
		},
		OccurredAt: at,
	}
}
