package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/application/service"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/request"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/response"
)

// GroceryHandler handles grocery item analysis requests
type GroceryHandler struct {
	groceryService *service.GroceryService
}

// NewGroceryHandler creates a new grocery handler
func NewGroceryHandler(groceryService *service.GroceryService) *GroceryHandler {
	return &GroceryHandler{groceryService: groceryService}
}

// ListItems returns the aggregated item list
// @Summary List purchased items
// @Description Aggregated purchase statistics per item, most bought first
// @Tags grocery
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /grocery/items [get]
func (h *GroceryHandler) ListItems(c *gin.Context) {
	rng, err := request.BindDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.groceryService.ListItems(c.Request.Context(), rng, request.BindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved", result)
}

// GetItem returns one item's full analysis
// @Summary Get item analysis
// @Description Price history, trend classification and chart series for one item
// @Tags grocery
// @Produce json
// @Param item path string true "Item description"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /grocery/items/{item} [get]
func (h *GroceryHandler) GetItem(c *gin.Context) {
	rng, err := request.BindDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.groceryService.GetItem(c.Request.Context(), c.Param("item"), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved", details)
}
