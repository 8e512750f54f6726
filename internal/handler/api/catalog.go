package api

import (
	"net/http"

	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{catalogQueries: q}
}

// @Summary List courts
// @Tags catalog
// @Produce json
// @Success 200 {array} queries.CourtView
// @Router /courts [get]
func (h *CatalogHandler) ListCourts(c *gin.Context) {
	courts, err := h.catalogQueries.ListCourts(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, courts)
}

// @Summary List entry types
// @Tags catalog
// @Produce json
// @Success 200 {array} queries.EntryTypeView
// @Router /entry-types [get]
func (h *CatalogHandler) ListEntryTypes(c *gin.Context) {
	entryTypes, err := h.catalogQueries.ListEntryTypes(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryTypes)
}
