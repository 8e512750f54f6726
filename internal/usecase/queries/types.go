package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is a live booking enriched with display names.
type BookingView struct {
	CourtID       int64     `json:"court_id"`
	CourtName     string    `json:"court_name"`
	Date          string    `json:"date"`
	Hour          int       `json:"hour"`
	EndHour       int       `json:"end_hour"`
	EntryTypeID   int64     `json:"entry_type_id"`
	EntryTypeName string    `json:"entry_type_name"`
	OwnerID       uuid.UUID `json:"owner_id"`
	OwnerName     string    `json:"owner_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type MemberView struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           string    `json:"role"`
	DailyHourQuota int       `json:"daily_hour_quota"`
	MembershipPaid bool      `json:"membership_paid"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
}

func (v MemberView) FullName() string {
	return v.FirstName + " " + v.LastName
}

type MemberPage struct {
	Items      []*MemberView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// QuotaView: Remaining is nil for members without a daily limit.
type QuotaView struct {
	MemberID  uuid.UUID `json:"member_id"`
	Date      string    `json:"date"`
	Used      int       `json:"used"`
	Unbounded bool      `json:"unbounded"`
	Remaining *int      `json:"remaining,omitempty"`
}

type CourtView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EntryTypeView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
