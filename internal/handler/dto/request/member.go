package request

import (
	"court-booking/internal/domain/member"
	"court-booking/internal/usecase/commands"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
}

func (r UpdateProfileRequest) ToCommand() (commands.ProfileUpdate, error) {
	if r.FirstName == nil && r.LastName == nil {
		return commands.ProfileUpdate{}, member.ErrNameRequired
	}
	return commands.ProfileUpdate{FirstName: r.FirstName, LastName: r.LastName}, nil
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

type SetMembershipRequest struct {
	MembershipPaid *bool `json:"membership_paid" binding:"required"`
}

type SetQuotaRequest struct {
	DailyHourQuota *int `json:"daily_hour_quota" binding:"required"`
}
