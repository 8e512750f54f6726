package member

import (
	"errors"
	"time"

	"court-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVerified          = errors.New("member already verified")
	ErrVerificationTokenInvalid = errors.New("verification token invalid")
	ErrVerificationTokenExpired = errors.New("verification token expired")
)

// Member is a club member. The allocation engine only reads it.
type Member struct {
	id                uuid.UUID
	email             Email
	passwordHash      string
	name              Name
	role              Role
	dailyQuota        DailyQuota
	membershipPaid    bool
	enabled           bool
	verificationToken string
	tokenExpiresAt    *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// NewMember registers a disabled member that must verify its email first.
func NewMember(email Email, passwordHash string, name Name, quota DailyQuota, now time.Time, tokenTTL time.Duration) *Member {
	m := &Member{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		role:         RoleMember,
		dailyQuota:   quota,
		createdAt:    now,
		updatedAt:    now,
	}
	m.RotateVerificationToken(now, tokenTTL)
	return m
}

type ReconstructParams struct {
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
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructMember rebuilds a member from storage without re-running registration rules.
func ReconstructMember(p ReconstructParams) (*Member, error) {
	email, err := NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	role, err := NewRole(p.Role)
	if err != nil {
		return nil, err
	}
	quota, err := NewDailyQuota(p.DailyHourQuota)
	if err != nil {
		return nil, err
	}
	return &Member{
		id:                p.ID,
		email:             email,
		passwordHash:      p.PasswordHash,
		name:              Name{first: p.FirstName, last: p.LastName},
		role:              role,
		dailyQuota:        quota,
		membershipPaid:    p.MembershipPaid,
		enabled:           p.Enabled,
		verificationToken: p.VerificationToken,
		tokenExpiresAt:    p.TokenExpiresAt,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (m *Member) ID() uuid.UUID              { return m.id }
func (m *Member) Email() Email               { return m.email }
func (m *Member) PasswordHash() string       { return m.passwordHash }
func (m *Member) Name() Name                 { return m.name }
func (m *Member) Role() Role                 { return m.role }
func (m *Member) DailyQuota() DailyQuota     { return m.dailyQuota }
func (m *Member) MembershipPaid() bool       { return m.membershipPaid }
func (m *Member) IsEnabled() bool            { return m.enabled }
func (m *Member) VerificationToken() string  { return m.verificationToken }
func (m *Member) TokenExpiresAt() *time.Time { return m.tokenExpiresAt }
func (m *Member) CreatedAt() time.Time       { return m.createdAt }
func (m *Member) UpdatedAt() time.Time       { return m.updatedAt }

func (m *Member) IsAdmin() bool { return m.role.IsAdmin() }

// CanCancel is the ownership capability: owners and administrators may release a booking.
func (m *Member) CanCancel(b *booking.Booking) bool {
	return m.IsAdmin() || b.IsOwnedBy(m.id)
}

func (m *Member) RotateVerificationToken(now time.Time, ttl time.Duration) {
	expires := now.Add(ttl)
	m.verificationToken = uuid.NewString()
	m.tokenExpiresAt = &expires
	m.updatedAt = now
}

func (m *Member) Verify(token string, now time.Time) error {
	if m.enabled {
		return ErrAlreadyVerified
	}
	if token == "" || token != m.verificationToken {
		return ErrVerificationTokenInvalid
	}
	if m.tokenExpiresAt != nil && now.After(*m.tokenExpiresAt) {
		return ErrVerificationTokenExpired
	}
	m.enabled = true
	m.verificationToken = ""
	m.tokenExpiresAt = nil
	m.updatedAt = now
	return nil
}

func (m *Member) Rename(name Name, now time.Time) {
	m.name = name
	m.updatedAt = now
}

func (m *Member) ChangeRole(role Role, now time.Time) {
	m.role = role
	m.updatedAt = now
}

func (m *Member) ChangeDailyQuota(q DailyQuota, now time.Time) {
	m.dailyQuota = q
	m.updatedAt = now
}

func (m *Member) ChangeMembershipPaid(paid bool, now time.Time) {
	m.membershipPaid = paid
	m.updatedAt = now
}
