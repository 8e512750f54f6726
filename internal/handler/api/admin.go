package api

import (
	"net/http"
	"strconv"

	"court-booking/internal/domain/member"
	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	memberCommands  commands.MemberCommands
	memberQueries   queries.MemberQueries
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	clock           clock.Clock
}

func NewAdminHandler(
	memberCommands commands.MemberCommands,
	memberQueries queries.MemberQueries,
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) *AdminHandler {
	return &AdminHandler{
		memberCommands:  memberCommands,
		memberQueries:   memberQueries,
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		clock:           clk,
	}
}

// @Summary List members
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (1-200)"
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} queries.MemberPage
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/members [get]
func (h *AdminHandler) ListMembers(c *gin.Context) {
	if !h.requireStoredAdmin(c) {
		return
	}

	limit := queries.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = n
	}

	page, err := h.memberQueries.List(c.Request.Context(), limit, c.Query("cursor"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Delete member
// @Description Delete a non-admin member together with all bookings
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/members/{id} [delete]
func (h *AdminHandler) DeleteMember(c *gin.Context) {
	actorID, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	if err := h.memberCommands.Delete(c.Request.Context(), actorID, targetID); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Grant or revoke admin role
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param request body reqdto.SetAdminRequest true "Admin flag"
// @Success 200 {object} resdto.MemberResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/members/{id}/admin [patch]
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	actorID, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	var req reqdto.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	m, err := h.memberCommands.SetAdmin(c.Request.Context(), actorID, targetID, *req.IsAdmin)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMember(m))
}

// @Summary Set membership paid flag
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param request body reqdto.SetMembershipRequest true "Membership flag"
// @Success 200 {object} resdto.MemberResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/members/{id}/membership [patch]
func (h *AdminHandler) SetMembershipPaid(c *gin.Context) {
	actorID, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	var req reqdto.SetMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	m, err := h.memberCommands.SetMembershipPaid(c.Request.Context(), actorID, targetID, *req.MembershipPaid)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMember(m))
}

// @Summary Set daily hour quota
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param request body reqdto.SetQuotaRequest true "Hours per day (>= 0)"
// @Success 200 {object} resdto.MemberResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/members/{id}/quota [patch]
func (h *AdminHandler) SetDailyQuota(c *gin.Context) {
	actorID, targetID, ok := h.bindTarget(c)
	if !ok {
		return
	}

	var req reqdto.SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	m, err := h.memberCommands.SetDailyQuota(c.Request.Context(), actorID, targetID, *req.DailyHourQuota)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMember(m))
}

// @Summary Upcoming bookings
// @Description All live bookings from the current hour on, ordered by date, hour and court
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.BookingListResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminHandler) ListUpcoming(c *gin.Context) {
	if !h.requireStoredAdmin(c) {
		return
	}

	views, err := h.bookingQueries.ListUpcoming(c.Request.Context(), h.clock.Now())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingListResponse{Items: views})
}

// @Summary Cancel any booking
// @Tags admin
// @Security BearerAuth
// @Param courtId path int true "Court ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param hour path int true "Start hour (0-23)"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{courtId}/{date}/{hour} [delete]
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	s, ok := bindSlot(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.AdminCancel(c.Request.Context(), actorID, s); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireStoredAdmin re-reads the caller's role for the read-only admin
// routes. The commands do the same check inside their transactions, so the
// mutating routes skip it.
func (h *AdminHandler) requireStoredAdmin(c *gin.Context) bool {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return false
	}

	actor, err := h.memberQueries.GetCurrent(c.Request.Context(), actorID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return false
	}
	if !member.Role(actor.Role).IsAdmin() {
		abortWithUseCaseError(c, commands.ErrAdminRequired)
		return false
	}
	return true
}

func (h *AdminHandler) bindTarget(c *gin.Context) (actorID, targetID uuid.UUID, ok bool) {
	actorID, ok = middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return uuid.Nil, uuid.Nil, false
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid member ID format", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, targetID, true
}
