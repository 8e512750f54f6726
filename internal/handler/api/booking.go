package api

import (
	"net/http"
	"time"

	"court-booking/internal/domain/slot"
	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	clock           clock.Clock
	loc             *time.Location
}

func NewBookingHandler(
	cmds commands.BookingCommands,
	q queries.BookingQueries,
	clk clock.Clock,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: cmds,
		bookingQueries:  q,
		clock:           clk,
		loc:             loc,
	}
}

// @Summary Reserve a slot
// @Description Reserve one hour on a court for the authenticated member
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ReserveRequest true "Slot and entry type"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Reserve(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req reqdto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot", nil)
		return
	}

	b, err := h.bookingCommands.Reserve(c.Request.Context(), memberID, cmd)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Cancel own booking
// @Tags bookings
// @Security BearerAuth
// @Param courtId path int true "Court ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param hour path int true "Start hour (0-23)"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{courtId}/{date}/{hour} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	s, ok := bindSlot(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.Cancel(c.Request.Context(), memberID, s); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Court calendar
// @Description Live bookings for one court on one date
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param courtId path int true "Court ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{courtId}/{date} [get]
func (h *BookingHandler) ListForCourtAndDate(c *gin.Context) {
	var uri reqdto.CourtDayURI
	if err := c.ShouldBindUri(&uri); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid court or date", nil)
		return
	}
	date, err := slot.ParseDate(uri.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	views, err := h.bookingQueries.ListForCourtAndDate(c.Request.Context(), uri.CourtID, date)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingListResponse{Items: views})
}

// @Summary Remaining daily quota
// @Description Remaining bookable hours of the caller, date defaults to today
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} queries.QuotaView
// @Failure 400 {object} httperr.Response
// @Router /bookings/quota [get]
func (h *BookingHandler) RemainingQuota(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	date := slot.DateOf(h.clock.Now().In(h.loc))
	if raw := c.Query("date"); raw != "" {
		d, err := slot.ParseDate(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
			return
		}
		date = d
	}

	view, err := h.bookingQueries.RemainingQuota(c.Request.Context(), memberID, date)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func bindSlot(c *gin.Context) (slot.Identity, bool) {
	var uri reqdto.SlotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot", nil)
		return slot.Identity{}, false
	}
	s, err := uri.ToSlot()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot", nil)
		return slot.Identity{}, false
	}
	return s, true
}
