package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/infrastructure/configloader"
)

const defaultHistoryDays = 30

// PortfolioHandler обрабатывает HTTP запросы, связанные с портфелями.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	historyDays      int
	logger           port.Logger
}

// NewPortfolioHandler создает новый экземпляр PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, cfg *configloader.Config, logger port.Logger) *PortfolioHandler {
	days := defaultHistoryDays
	if cfg != nil && cfg.Portfolio.HistoryDays > 0 {
		days = cfg.Portfolio.HistoryDays
	}
	return &PortfolioHandler{portfolioService: ps, historyDays: days, logger: logger}
}

// GetPortfolioHandler returns the derived summary of one wallet.
// GET /api/v1/portfolios/:walletAddress?sort=value
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	walletAddress := c.Param("walletAddress")
	opts := port.SummaryOptions{SortByValue: c.Query("sort") == "value"}

	summary, svcErrs, err := h.portfolioService.Summary(c.Request.Context(), walletAddress, opts)
	if err != nil {
		h.logger.Warn("Portfolio summary failed", "wallet", walletAddress, "error", err)
		respondError(c, "portfolio", err)
		return
	}
	if len(summary.Holdings) == 0 && len(svcErrs) > 0 {
		c.JSON(http.StatusOK, APIResponse{
			Data:          summary,
			ServiceErrors: svcErrs,
			StatusMessage: "Failed to retrieve holdings due to service errors.",
		})
		return
	}
	respondOK(c, summary, svcErrs, "Portfolio retrieved successfully.")
}

// GetPortfolioHistoryHandler returns a synthesized value series.
// GET /api/v1/portfolios/:walletAddress/history?days=30&seed=N
func (h *PortfolioHandler) GetPortfolioHistoryHandler(c *gin.Context) {
	days, ok := intQuery(c, "days", h.historyDays, maxHistoryDays)
	if !ok {
		return
	}
	rng, ok := seededRand(c)
	if !ok {
		return
	}
	points, err := h.portfolioService.History(c.Request.Context(), c.Param("walletAddress"), days, rng)
	if err != nil {
		respondError(c, "portfolio", err)
		return
	}
	respondOK(c, points, nil, "Portfolio history generated.")
}
