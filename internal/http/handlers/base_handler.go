// README: Shared handler utilities - JSON helpers and error mapping.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fare"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeDomainError maps module sentinel errors onto HTTP statuses. Pricing
// configuration and reference errors surface as 422 so the console can show
// the operator exactly what is misconfigured instead of a silent zero fare.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest),
		errors.Is(err, fare.ErrUnknownTripType),
		errors.Is(err, fare.ErrUnknownOutstation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrInvalidState), errors.Is(err, booking.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, fare.ErrNoRules),
		errors.Is(err, fare.ErrPackageNotFound),
		errors.Is(err, fare.ErrNoPackagePrice),
		errors.Is(err, fare.ErrBadRate):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
