//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"court-booking/internal/domain/member"
	"court-booking/internal/domain/slot"
	"court-booking/internal/handler/api"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/httptest"
	"court-booking/tests/common/testutil"
	commandsmock "court-booking/tests/mock/commands"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	memberID     uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.memberID = uuid.New()

	// 2024-04-30 23:30 UTC is already May 1st in the booking timezone
	clk := clock.NewMockClock(time.Date(2024, time.April, 30, 23, 30, 0, 0, time.UTC))
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries, clk, time.FixedZone("CEST", 2*60*60))

	authed := s.router.Group("/bookings", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			middleware.SetMember(c, s.memberID, member.RoleMember)
		}
		c.Next()
	})
	authed.GET("/quota", h.RemainingQuota)
	authed.GET("/:courtId/:date", h.ListForCourtAndDate)
	authed.POST("", h.Reserve)
	authed.DELETE("/:courtId/:date/:hour", h.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestReserve() {
	url := "/bookings"
	b := builder.NewBookingBuilder().WithOwner(s.memberID)
	reqBody := b.BuildDTO()

	s.Run("成功: 201で予約を返す", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.memberID, b.BuildCommand()).Return(b.BuildDomain(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(int64(1), response.CourtID)
		s.Equal("2099-05-01", response.Date)
		s.Equal(10, response.Hour)
		s.Equal(s.memberID, response.OwnerID)
	})

	s.Run("エラー: 未認証", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("エラー: 入力検証", func() {
		cases := []struct {
			name   string
			mutate testutil.Mutation
		}{
			{name: "hour missing", mutate: testutil.Without("hour")},
			{name: "hour 24", mutate: testutil.With("hour", 24)},
			{name: "hour negative", mutate: testutil.With("hour", -1)},
			{name: "court 0", mutate: testutil.With("court_id", 0)},
			{name: "date malformed", mutate: testutil.With("date", "01.05.2099")},
			{name: "entry type missing", mutate: testutil.Without("entry_type_id")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.Payload(s.T(), reqBody, tc.mutate), "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("hour 0 is a valid slot", func() {
		zero := builder.NewBookingBuilder().WithOwner(s.memberID).WithSlot(1, slot.NewDate(2099, time.May, 1), 0)
		s.mockCommands.EXPECT().Reserve(gomock.Any(), s.memberID, zero.BuildCommand()).Return(zero.BuildDomain(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, zero.BuildDTO(), "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("エラー: ユースケースのエラーをステータスに変換", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
			expectedCode   string
		}{
			{name: "slot taken", err: commands.ErrSlotAlreadyTaken, expectedStatus: http.StatusConflict, expectedMsg: "already booked", expectedCode: api.CodeSlotTaken},
			{name: "quota exceeded", err: commands.ErrQuotaExceeded, expectedStatus: http.StatusConflict, expectedMsg: "Daily booking limit", expectedCode: api.CodeQuotaExceeded},
			{name: "unknown court", err: commands.ErrUnknownCourt, expectedStatus: http.StatusNotFound, expectedMsg: "Tennis court not found", expectedCode: api.CodeUnknownCourt},
			{name: "unknown entry type", err: commands.ErrUnknownEntryType, expectedStatus: http.StatusNotFound, expectedMsg: "Entry type not found", expectedCode: api.CodeUnknownEntryType},
			{name: "store unavailable", err: infra.WrapRepoErr("reserve slot", errors.New("redis down"), infra.KindStoreFailure), expectedStatus: http.StatusServiceUnavailable, expectedMsg: "temporarily unavailable"},
			{name: "unclassified failure", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
			{name: "deleted member", err: errs.Mark(infra.WrapRepoErr("member not found", errors.New("no rows"), infra.KindNotFound), shared.ErrMemberNotFound), expectedStatus: http.StatusUnauthorized, expectedMsg: "Member not found or disabled"},
			{name: "marked validation error", err: errs.Wrap(errs.Mark(errors.New("quota below zero"), errs.ErrDomainValidation), "set quota"), expectedStatus: http.StatusBadRequest},
			{name: "marked invalid cursor", err: errs.Mark(errors.New("illegal base64"), queries.ErrInvalidCursor), expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid cursor"},
			{name: "corrupt stored slot is not a client error", err: infra.WrapRepoErr("corrupt booking slot", slot.ErrInvalidHour), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				httptest.AssertErrorCode(s.T(), rec, tc.expectedCode)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	target := builder.NewBookingBuilder().BuildSlot()

	testCases := []struct {
		name           string
		path           string
		err            error
		callsCommand   bool
		expectedStatus int
	}{
		{name: "成功", path: "/bookings/1/2099-05-01/10", callsCommand: true, expectedStatus: http.StatusNoContent},
		{name: "他人の予約", path: "/bookings/1/2099-05-01/10", err: commands.ErrNotOwner, callsCommand: true, expectedStatus: http.StatusForbidden},
		{name: "空きスロット", path: "/bookings/1/2099-05-01/10", err: commands.ErrSlotNotFound, callsCommand: true, expectedStatus: http.StatusNotFound},
		{name: "不正な時刻", path: "/bookings/1/2099-05-01/24", expectedStatus: http.StatusBadRequest},
		{name: "不正な日付", path: "/bookings/1/2099-13-01/10", expectedStatus: http.StatusBadRequest},
		{name: "不正なコート", path: "/bookings/x/2099-05-01/10", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.callsCommand {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), s.memberID, target).Return(tc.err)
			}
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, tc.path, nil, "token")
			s.Equal(tc.expectedStatus, rec.Code, rec.Body.String())
		})
	}
}

func (s *BookingHandlerTestSuite) TestListForCourtAndDate() {
	s.Run("成功", func() {
		views := []*queries.BookingView{{CourtID: 2, CourtName: "Tennisplatz 2", Date: "2024-05-01", Hour: 9, EndHour: 10}}
		s.mockQueries.EXPECT().ListForCourtAndDate(gomock.Any(), int64(2), slot.NewDate(2024, time.May, 1)).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/2/2024-05-01", nil, "token")

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Items, 1)
		s.Equal("Tennisplatz 2", response.Items[0].CourtName)
	})

	s.Run("存在しないコート", func() {
		s.mockQueries.EXPECT().ListForCourtAndDate(gomock.Any(), int64(9), gomock.Any()).Return(nil, queries.ErrCourtNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/9/2024-05-01", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Tennis court not found")
	})
}

func (s *BookingHandlerTestSuite) TestRemainingQuota() {
	remaining := 1

	s.Run("日付省略時は予約タイムゾーンの今日", func() {
		s.mockQueries.EXPECT().RemainingQuota(gomock.Any(), s.memberID, slot.NewDate(2024, time.May, 1)).
			Return(&queries.QuotaView{MemberID: s.memberID, Date: "2024-05-01", Used: 1, Remaining: &remaining}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/quota", nil, "token")

		var response queries.QuotaView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Remaining)
		s.Equal(1, *response.Remaining)
	})

	s.Run("日付指定", func() {
		s.mockQueries.EXPECT().RemainingQuota(gomock.Any(), s.memberID, slot.NewDate(2024, time.June, 3)).
			Return(&queries.QuotaView{MemberID: s.memberID, Date: "2024-06-03", Unbounded: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/quota?date=2024-06-03", nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("不正な日付", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/quota?date=tomorrow", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})
}
