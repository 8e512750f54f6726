//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"court-booking/internal/handler/dto/request"
	"court-booking/internal/pkg/cookie"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const loginURL = "/api/auth/login"

// LoginMember logs in through the API and returns the access cookie's token,
// usable as a bearer token in later requests.
func LoginMember(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	body := request.LoginRequest{Email: email, Password: password}
	rec := httptest.PerformRequest(t, router, http.MethodPost, loginURL, body, "")
	require.Equal(t, http.StatusOK, rec.Code, "login as %s: %s", email, rec.Body.String())

	access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	require.NotNil(t, access, "no %s cookie after login", cookie.AccessTokenCookieName)
	require.NotEmpty(t, access.Value)
	return access.Value
}

// CreateAndLogin inserts an enabled member and returns its id and a bearer token.
func CreateAndLogin(t *testing.T, db dbtest.Executor, router *gin.Engine, email, role string, quota int) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestMember(t, db, email, role, quota)
	return id, LoginMember(t, router, email, dbtest.TestPassword)
}
