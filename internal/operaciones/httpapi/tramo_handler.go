// README: Leg execution handlers: truck assignment, start and finish.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/ruta"
	"logistica/internal/operaciones/tramo"
)

type TramoHandler struct {
	planner *ruta.Planner
	tramos  *tramo.Service
}

func NewTramoHandler(planner *ruta.Planner, tramos *tramo.Service) *TramoHandler {
	return &TramoHandler{planner: planner, tramos: tramos}
}

func (h *TramoHandler) List(c *gin.Context) {
	out, err := h.planner.ListTramos(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *TramoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.planner.GetTramo(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type asignarCamionReq struct {
	CamionID int64 `json:"camionId"`
}

func (h *TramoHandler) AsignarCamion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req asignarCamionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.CamionID <= 0 {
		writeError(c, http.StatusBadRequest, "camionId is required")
		return
	}
	t, err := h.tramos.AssignCamion(c.Request.Context(), id, req.CamionID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TramoHandler) Iniciar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.tramos.Start(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TramoHandler) Finalizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.tramos.Finish(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

// Asignados lists the not-yet-finished legs assigned to one truck.
func (h *TramoHandler) Asignados(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.planner.ListTramosAsignados(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}
