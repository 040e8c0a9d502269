// README: JSON helpers and the domain error to status-code mapping.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/flota"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/operaciones/solicitud"
	"logistica/internal/operaciones/tramo"
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

// writeDomainError maps sentinel errors to HTTP statuses: validation 400,
// missing entities 404, state conflicts 409, upstream failures 502.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cliente.ErrValidation),
		errors.Is(err, contenedor.ErrValidation),
		errors.Is(err, solicitud.ErrValidation),
		errors.Is(err, ruta.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, cliente.ErrNotFound),
		errors.Is(err, contenedor.ErrNotFound),
		errors.Is(err, solicitud.ErrNotFound),
		errors.Is(err, solicitud.ErrContenedorNotFound),
		errors.Is(err, ruta.ErrNotFound),
		errors.Is(err, ruta.ErrTramoNotFound),
		errors.Is(err, ruta.ErrSolicitudNotFound),
		errors.Is(err, flota.ErrNotFound),
		errors.Is(err, tramo.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, solicitud.ErrInvalidState),
		errors.Is(err, ruta.ErrSolicitudNoProgramable),
		errors.Is(err, tramo.ErrConflict),
		errors.Is(err, tramo.ErrCapacityExceeded):
		writeError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ruta.ErrUpstream),
		errors.Is(err, tramo.ErrUpstream),
		errors.Is(err, flota.ErrUpstream):
		writeError(c, http.StatusBadGateway, err.Error())

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
