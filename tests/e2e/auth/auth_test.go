//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"court-booking/internal/domain/member"
	"court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/authtest"
	"court-booking/tests/common/dbtest"
	"court-booking/tests/common/httptest"
	"court-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	verifyURL   = "/api/auth/verify"
	resendURL   = "/api/auth/resend-verification"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) register(email string) {
	req := request.RegisterRequest{Email: email, Password: dbtest.TestPassword, FirstName: "Max", LastName: "Muster"}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, req, "")
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
}

func (s *authSuite) TestRegistrationFlow() {
	s.Run("登録から確認、ログインまで", func() {
		s.register("new@example.com")

		// 確認前はログインできない
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "new@example.com", Password: dbtest.TestPassword}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "not verified")

		token := dbtest.VerificationToken(s.T(), s.DB, "new@example.com")
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, verifyURL+"?token="+token, nil, "")
		s.Equal(http.StatusNoContent, w.Code, w.Body.String())

		// 同じトークンは二度使えない
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, verifyURL+"?token="+token, nil, "")
		s.Equal(http.StatusNotFound, w.Code)

		access := authtest.LoginMember(s.T(), s.Router, "new@example.com", dbtest.TestPassword)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, access)

		var me queries.MemberView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &me)
		s.Equal("new@example.com", me.Email)
		s.Equal(s.Config.Booking.DefaultDailyQuota, me.DailyHourQuota)
		s.Equal("member", me.Role)
		s.True(me.Enabled)
	})

	s.Run("登録済みメールは409", func() {
		s.register("dup@example.com")

		req := request.RegisterRequest{Email: "dup@example.com", Password: dbtest.TestPassword, FirstName: "Max", LastName: "Muster"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already registered")
	})

	s.Run("確認メールの再送でトークンが変わる", func() {
		s.register("resend@example.com")
		before := dbtest.VerificationToken(s.T(), s.DB, "resend@example.com")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, resendURL,
			request.ResendVerificationRequest{Email: "resend@example.com"}, "")
		s.Equal(http.StatusAccepted, w.Code, w.Body.String())

		after := dbtest.VerificationToken(s.T(), s.DB, "resend@example.com")
		s.NotEqual(before, after)

		s.Equal(2, dbtest.CountNotificationJobs(s.T(), s.DB, "member.verification"))
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{name: "正常なログイン", email: "member@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusOK},
		{name: "存在しないメンバー", email: "nobody@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusUnauthorized},
		{name: "間違ったパスワード", email: "member@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			dbtest.CreateTestMember(s.T(), s.DB, "member@example.com", string(member.RoleMember), 2)

			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			s.Equal(tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var res resdto.LoginResponse
				httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
				s.NotEmpty(res.AccessToken)

				// Cookieだけで認証できる
				session := httptest.ExtractCookie(w, "access_token")
				s.Require().NotNil(session)
				me := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, meURL, nil, []*http.Cookie{session}, "")
				s.Equal(http.StatusOK, me.Code, me.Body.String())
			}
		})
	}
}

func (s *authSuite) TestTokens() {
	s.Run("期限切れトークンは401", func() {
		id := dbtest.CreateTestMember(s.T(), s.DB, "member@example.com", string(member.RoleMember), 2)
		token := s.jwt.CreateExpiredToken(s.T(), id, member.RoleMember)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("削除済みメンバーのトークンは401", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), member.RoleMember)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("ログアウトでCookieが消える", func() {
		dbtest.CreateTestMember(s.T(), s.DB, "member@example.com", string(member.RoleMember), 2)
		authtest.LoginMember(s.T(), s.Router, "member@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		s.Equal(http.StatusNoContent, w.Code)
		c := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(c)
		s.Empty(c.Value)
	})
}
