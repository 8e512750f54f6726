package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberCommands commands.MemberCommands
	memberQueries  queries.MemberQueries
	cookieConfig   config.CookieConfig
}

func NewMemberHandler(cmds commands.MemberCommands, q queries.MemberQueries, cfg config.Config) *MemberHandler {
	return &MemberHandler{
		memberCommands: cmds,
		memberQueries:  q,
		cookieConfig:   cfg.Cookie,
	}
}

// @Summary Get current member
// @Tags members
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.MemberView
// @Failure 401 {object} httperr.Response
// @Router /me [get]
func (h *MemberHandler) Me(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	view, err := h.memberQueries.GetCurrent(c.Request.Context(), memberID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update own profile
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.UpdateProfileRequest true "Name"
// @Success 200 {object} resdto.MemberResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /me [put]
func (h *MemberHandler) UpdateMe(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req reqdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	upd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		return
	}

	m, err := h.memberCommands.UpdateProfile(c.Request.Context(), memberID, upd)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMember(m))
}

// @Summary Delete own account
// @Description Removes the member and all bookings; administrators cannot delete themselves
// @Tags members
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /me [delete]
func (h *MemberHandler) DeleteMe(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	if err := h.memberCommands.DeleteSelf(c.Request.Context(), memberID); err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	cookie.ClearAccessToken(c, h.cookieConfig)
	c.Status(http.StatusNoContent)
}
