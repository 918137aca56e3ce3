package restapi

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/domain/series"
)

// APIResponse is the envelope of every /api/v1 response.
type APIResponse struct {
	Data          any                   `json:"data"`
	ServiceErrors []entity.ServiceError `json:"service_errors,omitempty"`
	StatusMessage string                `json:"status_message"`
}

func respondOK(c *gin.Context, data any, svcErrs []entity.ServiceError, okMessage string) {
	msg := okMessage
	if len(svcErrs) > 0 {
		msg = okMessage + " Some sources reported errors."
	}
	c.JSON(http.StatusOK, APIResponse{Data: data, ServiceErrors: svcErrs, StatusMessage: msg})
}

// respondError maps domain errors to status codes. Upstream failures are not the
// client's fault: they come back as 200 with a service error and no data.
func respondError(c *gin.Context, source string, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, APIResponse{StatusMessage: err.Error()})
	case errors.Is(err, entity.ErrWalletNotFound), errors.Is(err, entity.ErrUnknownNetwork):
		c.JSON(http.StatusNotFound, APIResponse{StatusMessage: err.Error()})
	default:
		c.JSON(http.StatusOK, APIResponse{
			ServiceErrors: []entity.ServiceError{{Source: source, Message: err.Error()}},
			StatusMessage: "Data is temporarily unavailable.",
		})
	}
}

func badRequest(c *gin.Context, field, reason string) {
	respondError(c, "", &entity.InvalidInputError{Field: field, Reason: reason})
}

// Upper bounds for client-sized responses. Series are allocated up front.
const (
	maxHistoryDays  = 365
	maxHistoryHours = 24 * 30
	maxMoversLimit  = 100
)

// intQuery reads an integer query parameter, falling back to def when absent.
// Values above upper are rejected with 400.
func intQuery(c *gin.Context, name string, def, upper int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, name, "must be an integer")
		return 0, false
	}
	if v > upper {
		badRequest(c, name, "must not exceed "+strconv.Itoa(upper))
		return 0, false
	}
	return v, true
}

// seededRand returns a deterministic generator when ?seed= is given and nil (random)
// otherwise.
func seededRand(c *gin.Context) (*rand.Rand, bool) {
	raw, ok := c.GetQuery("seed")
	if !ok || raw == "" {
		return nil, true
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		badRequest(c, "seed", "must be an unsigned integer")
		return nil, false
	}
	return series.NewRand(seed), true
}
