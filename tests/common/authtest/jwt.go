//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-booking/internal/domain/member"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens with the server's secret so tests can skip the login flow.
type JWTHelper struct {
	secret   string
	duration time.Duration
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		duration = time.Hour
	}
	return &JWTHelper{secret: cfg.Secret, duration: duration}
}

func (h *JWTHelper) GenerateToken(t *testing.T, memberID uuid.UUID, role member.Role) string {
	t.Helper()
	return h.issueAt(t, time.Now(), memberID, role)
}

// CreateExpiredToken issues a token whose lifetime ended a minute ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, memberID uuid.UUID, role member.Role) string {
	t.Helper()
	return h.issueAt(t, time.Now().Add(-h.duration-time.Minute), memberID, role)
}

func (h *JWTHelper) issueAt(t *testing.T, at time.Time, memberID uuid.UUID, role member.Role) string {
	t.Helper()
	svc := jwt.NewService(h.secret, h.duration, jwt.WithClock(clock.NewMockClock(at)))
	token, err := svc.GenerateToken(memberID, role)
	require.NoError(t, err)
	return token
}
