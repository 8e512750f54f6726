//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"court-booking/internal/handler/api"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/httptest"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newCatalogRouter(t *testing.T) (*gin.Engine, *queriesmock.MockCatalogQueries) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	q := queriesmock.NewMockCatalogQueries(gomock.NewController(t))
	h := api.NewCatalogHandler(q)

	router := gin.New()
	router.GET("/courts", h.ListCourts)
	router.GET("/entry-types", h.ListEntryTypes)
	return router, q
}

func TestCatalogHandler_ListCourts(t *testing.T) {
	t.Run("成功", func(t *testing.T) {
		router, q := newCatalogRouter(t)
		q.EXPECT().ListCourts(gomock.Any()).Return([]*queries.CourtView{
			{ID: 1, Name: "Tennisplatz 1"},
			{ID: 2, Name: "Tennisplatz 2"},
		}, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/courts", nil, "")

		var response []queries.CourtView
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
		assert.Len(t, response, 2)
		assert.Equal(t, "Tennisplatz 2", response[1].Name)
	})

	t.Run("失敗: データベースエラー", func(t *testing.T) {
		router, q := newCatalogRouter(t)
		q.EXPECT().ListCourts(gomock.Any()).Return(nil, errors.New("connection refused"))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/courts", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "")
	})
}

func TestCatalogHandler_ListEntryTypes(t *testing.T) {
	router, q := newCatalogRouter(t)
	q.EXPECT().ListEntryTypes(gomock.Any()).Return([]*queries.EntryTypeView{
		{ID: 1, Name: "Buchung"},
		{ID: 2, Name: "Kurs"},
	}, nil)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/entry-types", nil, "")

	var response []queries.EntryTypeView
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
	assert.Equal(t, "Buchung", response[0].Name)
}
