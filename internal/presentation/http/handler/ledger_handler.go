package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/application/service"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/response"
)

// LedgerHandler handles SIE ledger requests. The ledger is selected by
// the company claims on the authenticated session.
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// Overview returns the monthly per-account overview
// @Summary Ledger overview
// @Description Twelve-month activity per account for the session's company
// @Tags ledger
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /ledger/overview [get]
func (h *LedgerHandler) Overview(c *gin.Context) {
	overview, err := h.ledgerService.MonthlyOverview(c.Request.Context(), GetCompanyName(c), GetDatabaseNumber(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger overview retrieved", overview)
}

// GetAccount returns one account's ledger with running balances
// @Summary Account ledger
// @Tags ledger
// @Produce json
// @Param account path int true "Account number"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /ledger/accounts/{account} [get]
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	account, err := strconv.Atoi(c.Param("account"))
	if err != nil {
		response.BadRequest(c, "Account number must be numeric")
		return
	}

	detail, err := h.ledgerService.GetAccount(c.Request.Context(), GetCompanyName(c), GetDatabaseNumber(c), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved", detail)
}
