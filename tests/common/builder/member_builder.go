//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/member"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type MemberBuilder struct {
	ID                uuid.UUID
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Role              string
	DailyHourQuota    int
	MembershipPaid    bool
	Enabled           bool
	VerificationToken string
	TokenExpiresAt    *time.Time
}

func NewMemberBuilder() *MemberBuilder {
	return &MemberBuilder{
		ID:             uuid.New(),
		Email:          "member@example.com",
		PasswordHash:   "hashed_password",
		FirstName:      "Max",
		LastName:       "Muster",
		Role:           "member",
		DailyHourQuota: 2,
		Enabled:        true,
	}
}

func (b *MemberBuilder) With(mutate func(*MemberBuilder)) *MemberBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *MemberBuilder) BuildDomain() (*member.Member, error) {
	now := time.Now()
	return member.ReconstructMember(member.ReconstructParams{
		ID:                b.ID,
		Email:             b.Email,
		PasswordHash:      b.PasswordHash,
		FirstName:         b.FirstName,
		LastName:          b.LastName,
		Role:              b.Role,
		DailyHourQuota:    b.DailyHourQuota,
		MembershipPaid:    b.MembershipPaid,
		Enabled:           b.Enabled,
		VerificationToken: b.VerificationToken,
		TokenExpiresAt:    b.TokenExpiresAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// MustBuildDomain panics on invalid builder state; use it only with valid defaults.
func (b *MemberBuilder) MustBuildDomain() *member.Member {
	m, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return m
}

func (b *MemberBuilder) BuildView() *queries.MemberView {
	return &queries.MemberView{
		ID:             b.ID,
		Email:          b.Email,
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		Role:           b.Role,
		DailyHourQuota: b.DailyHourQuota,
		MembershipPaid: b.MembershipPaid,
		Enabled:        b.Enabled,
		CreatedAt:      time.Now(),
	}
}

// Fluent builder methods
func (b *MemberBuilder) WithID(id uuid.UUID) *MemberBuilder {
	b.ID = id
	return b
}

func (b *MemberBuilder) WithEmail(email string) *MemberBuilder {
	b.Email = email
	return b
}

func (b *MemberBuilder) WithName(first, last string) *MemberBuilder {
	b.FirstName = first
	b.LastName = last
	return b
}

func (b *MemberBuilder) WithRole(role string) *MemberBuilder {
	b.Role = role
	return b
}

func (b *MemberBuilder) AsAdmin() *MemberBuilder {
	b.Role = "admin"
	return b
}

func (b *MemberBuilder) WithDailyQuota(hours int) *MemberBuilder {
	b.DailyHourQuota = hours
	return b
}

func (b *MemberBuilder) WithPasswordHash(hash string) *MemberBuilder {
	b.PasswordHash = hash
	return b
}

func (b *MemberBuilder) AsUnverified(token string, expiresAt time.Time) *MemberBuilder {
	b.Enabled = false
	b.VerificationToken = token
	b.TokenExpiresAt = &expiresAt
	return b
}
