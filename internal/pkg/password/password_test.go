//go:build unit

package password

import (
	"strings"
	"testing"

	"court-booking/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, ComparePassword(hash, "password123"))
	testutil.AssertErrorIs(t, ComparePassword(hash, "password124"), ErrComparisonFailed)
}

func TestHashPassword_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "空のパスワード", password: ""},
		{name: "bcryptの上限を超える", password: strings.Repeat("a", MaxLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword(tt.password)
			testutil.AssertErrorIs(t, err, ErrInvalidPassword)
		})
	}
}

func TestComparePassword_MalformedHash(t *testing.T) {
	err := ComparePassword("not-a-bcrypt-hash", "password123")
	require.Error(t, err)
	testutil.AssertNotErrorIs(t, err, ErrComparisonFailed)
}
