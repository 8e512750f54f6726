package response

import (
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	CourtID     int64     `json:"court_id"`
	Date        string    `json:"date"`
	Hour        int       `json:"hour"`
	EntryTypeID int64     `json:"entry_type_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	s := b.Slot()
	return &BookingResponse{
		CourtID:     s.CourtID,
		Date:        s.Date.String(),
		Hour:        s.Hour,
		EntryTypeID: b.EntryTypeID(),
		OwnerID:     b.OwnerID(),
		CreatedAt:   b.CreatedAt(),
	}
}

type BookingListResponse struct {
	Items []*queries.BookingView `json:"items"`
}
