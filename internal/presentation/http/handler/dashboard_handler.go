package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/application/service"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/request"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard overview requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns the landing page summary
// @Summary Dashboard overview
// @Description Spend totals, top items, top stores and recent visits
// @Tags dashboard
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	rng, err := request.BindDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved", overview)
}
