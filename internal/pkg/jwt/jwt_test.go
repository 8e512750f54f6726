//go:build unit

package jwt

import (
	"testing"
	"time"

	"court-booking/internal/domain/member"
	"court-booking/internal/pkg/clock"
	"court-booking/tests/common/testutil"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := NewService("unit-secret", time.Hour)
	memberID := uuid.New()

	t.Run("発行したトークンを検証できる", func(t *testing.T) {
		token, err := svc.GenerateToken(memberID, member.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, memberID, claims.MemberID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("期限切れトークンはNG", func(t *testing.T) {
		expired := NewService("unit-secret", time.Hour, WithClock(clock.NewMockClock(time.Now().Add(-2*time.Hour))))

		token, err := expired.GenerateToken(memberID, member.RoleMember)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		testutil.AssertErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("別の鍵で署名されたトークンはNG", func(t *testing.T) {
		token, err := NewService("other-secret", time.Hour).GenerateToken(memberID, member.RoleMember)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		testutil.AssertErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none署名はNG", func(t *testing.T) {
		token := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{MemberID: memberID, Role: "admin"})
		signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		testutil.AssertErrorIs(t, err, ErrInvalidToken)
	})
}
