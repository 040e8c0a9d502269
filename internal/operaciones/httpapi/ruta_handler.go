// README: Route planning handlers: tentative proposals and route commit.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/ruta"
)

type RutaHandler struct {
	planner *ruta.Planner
}

func NewRutaHandler(planner *ruta.Planner) *RutaHandler {
	return &RutaHandler{planner: planner}
}

func (h *RutaHandler) Tentativas(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	proposals, err := h.planner.TentativeRoutes(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, proposals)
}

type assignRutaReq struct {
	Tramos []ruta.TramoSpec `json:"tramos"`
}

func (h *RutaHandler) Assign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignRutaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, tramos, err := h.planner.Assign(c.Request.Context(), id, req.Tramos)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"ruta": r, "tramos": tramos})
}

func (h *RutaHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.planner.GetRuta(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *RutaHandler) Tramos(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tramos, err := h.planner.ListTramosByRuta(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tramos)
}
