// README: JSON helpers and error mapping for the flota API.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"logistica/internal/flota/camion"
	"logistica/internal/flota/deposito"
	"logistica/internal/flota/tarifa"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, camion.ErrValidation),
		errors.Is(err, tarifa.ErrValidation),
		errors.Is(err, deposito.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, camion.ErrNotFound),
		errors.Is(err, tarifa.ErrNotFound),
		errors.Is(err, tarifa.ErrSinActiva),
		errors.Is(err, deposito.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
