package restapi

import (
	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/infrastructure/configloader"
)

const defaultGasHistoryHours = 24

// GasHandler serves gas profiles, cost matrices and the price history chart.
type GasHandler struct {
	gas          port.GasService
	historyHours int
}

// NewGasHandler creates a GasHandler.
func NewGasHandler(gs port.GasService, cfg *configloader.Config) *GasHandler {
	hours := defaultGasHistoryHours
	if cfg != nil && cfg.Series.GasHistoryHrs > 0 {
		hours = cfg.Series.GasHistoryHrs
	}
	return &GasHandler{gas: gs, historyHours: hours}
}

// GetProfilesHandler GET /api/v1/gas
func (h *GasHandler) GetProfilesHandler(c *gin.Context) {
	respondOK(c, h.gas.Profiles(c.Request.Context()), nil, "Gas profiles retrieved successfully.")
}

// GetEstimatesHandler GET /api/v1/gas/:network/estimates
func (h *GasHandler) GetEstimatesHandler(c *gin.Context) {
	est, err := h.gas.Estimates(c.Request.Context(), c.Param("network"))
	if err != nil {
		respondError(c, "gas", err)
		return
	}
	respondOK(c, est, nil, "Gas estimates computed.")
}

// GetHistoryHandler GET /api/v1/gas/history?hours=24&seed=N
func (h *GasHandler) GetHistoryHandler(c *gin.Context) {
	hours, ok := intQuery(c, "hours", h.historyHours, maxHistoryHours)
	if !ok {
		return
	}
	rng, ok := seededRand(c)
	if !ok {
		return
	}
	points, err := h.gas.History(hours, rng)
	if err != nil {
		respondError(c, "gas", err)
		return
	}
	respondOK(c, points, nil, "Gas history generated.")
}
