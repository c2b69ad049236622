package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/application/service"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/request"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/response"
)

// ComparisonHandler handles store price comparison requests
type ComparisonHandler struct {
	comparisonService *service.ComparisonService
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparisonService *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService}
}

// Compare returns the item-by-item price comparison of two stores
// @Summary Compare two stores
// @Description Most recent prices of items bought at both stores
// @Tags comparison
// @Produce json
// @Param store1 query string true "First store name"
// @Param store2 query string true "Second store name"
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /comparison [get]
func (h *ComparisonHandler) Compare(c *gin.Context) {
	var q request.ComparisonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Both store1 and store2 are required")
		return
	}

	rng, err := request.BindDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.comparisonService.CompareStores(c.Request.Context(), q.Store1, q.Store2, rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Comparison retrieved", result)
}
