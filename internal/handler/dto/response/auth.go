package response

import (
	"court-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	MemberID    uuid.UUID `json:"member_id"`
	Role        string    `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: r.AccessToken,
		ExpiresIn:   int64(r.ExpiresIn.Seconds()),
		MemberID:    r.MemberID,
		Role:        r.Role.String(),
	}
}

type RegisterResponse struct {
	MemberID uuid.UUID `json:"member_id"`
	Email    string    `json:"email"`
	Message  string    `json:"message"`
}
