package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/application/service"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/request"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/response"
)

// StoreHandler handles store analysis requests
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// ListStores returns visit statistics per store
// @Summary List stores
// @Tags stores
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /stores [get]
func (h *StoreHandler) ListStores(c *gin.Context) {
	rng, err := request.BindDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.storeService.ListStores(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved", result)
}

// GetStore returns one store's visits and item aggregates
// @Summary Get store analysis
// @Tags stores
// @Produce json
// @Param store path string true "Store name"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /stores/{store} [get]
func (h *StoreHandler) GetStore(c *gin.Context) {
	rng, err := request.BindDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.storeService.GetStore(c.Request.Context(), c.Param("store"), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store retrieved", details)
}

// GetVisit returns one receipt with its line items
// @Summary Get visit receipt
// @Tags stores
// @Produce json
// @Param store path string true "Store name"
// @Param visit_id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /stores/{store}/visits/{visit_id} [get]
func (h *StoreHandler) GetVisit(c *gin.Context) {
	visit, err := h.storeService.GetVisit(c.Request.Context(), c.Param("store"), c.Param("visit_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit retrieved", visit)
}
