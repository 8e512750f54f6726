package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	cookieConfig config.CookieConfig
}

func NewAuthHandler(authCommands commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		cookieConfig: cfg.Cookie,
	}
}

// @Summary Register member
// @Description Create a disabled member account and send a verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration request"
// @Success 201 {object} resdto.RegisterResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	registration, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		return
	}

	m, err := h.authCommands.Register(c.Request.Context(), registration)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterResponse{
		MemberID: m.ID(),
		Email:    m.Email().Value(),
		Message:  "Registration successful, please confirm your email address",
	})
}

// @Summary Verify email
// @Description Enable the member owning the verification token
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	if err := h.authCommands.Verify(c.Request.Context(), c.Query("token")); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Resend verification email
// @Tags auth
// @Accept json
// @Param request body reqdto.ResendVerificationRequest true "Email"
// @Success 202 "Accepted"
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req reqdto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.authCommands.ResendVerification(c.Request.Context(), req.Email); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Member login
// @Description Login with email and password, the token is also set as HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), credentials)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	cookie.SetAccessToken(c, h.cookieConfig, result.AccessToken, result.ExpiresIn)
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Member logout
// @Description Clear the access token cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; clients holding a bearer token simply drop it.
	cookie.ClearAccessToken(c, h.cookieConfig)
	c.Status(http.StatusNoContent)
}
