package api

import (
	"net/http"

	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/member"
	"court-booking/internal/domain/slot"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errs.New("member not authenticated")

// Error codes of the allocation engine outcomes.
const (
	CodeSlotTaken        = "slot_taken"
	CodeQuotaExceeded    = "quota_exceeded"
	CodeNotOwner         = "not_owner"
	CodeBookingNotFound  = "booking_not_found"
	CodeUnknownCourt     = "unknown_court"
	CodeUnknownEntryType = "unknown_entry_type"
)

// abortWithUseCaseError translates use case outcomes into the public error body.
// An unreachable slot store is 503; any other fault not listed surfaces as 500.
func abortWithUseCaseError(c *gin.Context, err error) {
	status, msg, code := http.StatusInternalServerError, "Internal server error", ""

	switch {
	// Backend faults win over whatever domain error they wrap
	case errs.Is(err, errs.ErrStoreUnavailable):
		status, msg = http.StatusServiceUnavailable, "Booking store temporarily unavailable"
	case errs.Is(err, errs.ErrDatabaseOperationFailed):
		// stays 500

	// Allocation engine
	case errs.Is(err, commands.ErrSlotAlreadyTaken):
		status, msg, code = http.StatusConflict, "This time slot is already booked", CodeSlotTaken
	case errs.Is(err, commands.ErrQuotaExceeded):
		status, msg, code = http.StatusConflict, "Daily booking limit reached", CodeQuotaExceeded
	case errs.Is(err, commands.ErrNotOwner):
		status, msg, code = http.StatusForbidden, "You can only cancel your own bookings", CodeNotOwner
	case errs.Is(err, commands.ErrSlotNotFound):
		status, msg, code = http.StatusNotFound, "Booking not found", CodeBookingNotFound
	case errs.Is(err, commands.ErrUnknownCourt), errs.Is(err, queries.ErrCourtNotFound):
		status, msg, code = http.StatusNotFound, "Tennis court not found", CodeUnknownCourt
	case errs.Is(err, commands.ErrUnknownEntryType):
		status, msg, code = http.StatusNotFound, "Entry type not found", CodeUnknownEntryType
	case errs.Is(err, commands.ErrAdminRequired):
		status, msg = http.StatusForbidden, "Administrator role required"

	// Members
	case errs.Is(err, shared.ErrMemberNotFound), errs.Is(err, shared.ErrMemberDisabled):
		status, msg = http.StatusUnauthorized, "Member not found or disabled"
	case errs.Is(err, commands.ErrCannotDeleteAdmin):
		status, msg = http.StatusForbidden, "Administrators cannot be deleted"
	case errs.Is(err, commands.ErrCannotDemoteSelf):
		status, msg = http.StatusForbidden, "You cannot revoke your own admin role"

	// Registration and login
	case errs.Is(err, commands.ErrEmailAlreadyExists):
		status, msg = http.StatusConflict, "Email is already registered"
	case errs.Is(err, commands.ErrInvalidCredentials), errs.Is(err, auth.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid email or password"
	case errs.Is(err, commands.ErrMemberNotVerified):
		status, msg = http.StatusForbidden, "Email address not verified"
	case errs.Is(err, commands.ErrVerificationTokenNotFound), errs.Is(err, member.ErrVerificationTokenInvalid):
		status, msg = http.StatusNotFound, "Verification token not found"
	case errs.Is(err, member.ErrVerificationTokenExpired):
		status, msg = http.StatusGone, "Verification token expired"
	case errs.Is(err, member.ErrAlreadyVerified):
		status, msg = http.StatusConflict, "Email address already verified"

	// Input
	case errs.Is(err, queries.ErrInvalidCursor):
		status, msg = http.StatusBadRequest, "Invalid cursor"
	case isValidationError(err):
		status, msg = http.StatusBadRequest, err.Error()
	}

	httperr.AbortWithCode(c, status, err, code, msg)
}

func isValidationError(err error) bool {
	return errs.Is(err, errs.ErrDomainValidation) ||
		errs.Is(err, member.ErrInvalidEmail) ||
		errs.Is(err, member.ErrPasswordTooWeak) ||
		errs.Is(err, member.ErrNameRequired) ||
		errs.Is(err, member.ErrNegativeQuota) ||
		errs.Is(err, slot.ErrInvalidHour) ||
		errs.Is(err, slot.ErrInvalidCourt) ||
		errs.Is(err, slot.ErrInvalidDate) ||
		errs.Is(err, booking.ErrOwnerRequired)
}

func abortUnauthenticated(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
}
