package response

import (
	"time"

	"court-booking/internal/domain/member"

	"github.com/google/uuid"
)

type MemberResponse struct {
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

func FromMember(m *member.Member) *MemberResponse {
	return &MemberResponse{
		ID:             m.ID(),
		Email:          m.Email().Value(),
		FirstName:      m.Name().First(),
		LastName:       m.Name().Last(),
		Role:           m.Role().String(),
		DailyHourQuota: m.DailyQuota().Int(),
		MembershipPaid: m.MembershipPaid(),
		Enabled:        m.IsEnabled(),
		CreatedAt:      m.CreatedAt(),
	}
}
