// README: Camion handlers, including the availability flip consumed by the
// operaciones service.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/flota/camion"
)

type CamionHandler struct {
	camiones *camion.Service
}

func NewCamionHandler(svc *camion.Service) *CamionHandler {
	return &CamionHandler{camiones: svc}
}

func (h *CamionHandler) List(c *gin.Context) {
	solo := c.Query("disponibles") == "true"
	out, err := h.camiones.List(c.Request.Context(), solo)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *CamionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cam, err := h.camiones.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cam)
}

type camionReq struct {
	Dominio                 string  `json:"dominio"`
	NombreTransportista     string  `json:"nombreTransportista"`
	Telefono                string  `json:"telefono"`
	CapacidadPeso           float64 `json:"capacidadPeso"`
	CapacidadVolumen        float64 `json:"capacidadVolumen"`
	ConsumoCombustiblePorKm float64 `json:"consumoCombustiblePorKm"`
	CostoPorKm              float64 `json:"costoPorKm"`
	Disponible              *bool   `json:"disponible"`
}

func (r camionReq) toModel(id int64) *camion.Camion {
	disponible := true
	if r.Disponible != nil {
		disponible = *r.Disponible
	}
	return &camion.Camion{
		ID:                      id,
		Dominio:                 r.Dominio,
		NombreTransportista:     r.NombreTransportista,
		Telefono:                r.Telefono,
		CapacidadPeso:           r.CapacidadPeso,
		CapacidadVolumen:        r.CapacidadVolumen,
		ConsumoCombustiblePorKm: r.ConsumoCombustiblePorKm,
		CostoPorKm:              r.CostoPorKm,
		Disponible:              disponible,
	}
}

func (h *CamionHandler) Create(c *gin.Context) {
	var req camionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cam, err := h.camiones.Create(c.Request.Context(), req.toModel(0))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, cam)
}

func (h *CamionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req camionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cam, err := h.camiones.Update(c.Request.Context(), req.toModel(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cam)
}

type disponibilidadReq struct {
	Disponible *bool `json:"disponible"`
}

func (h *CamionHandler) SetDisponibilidad(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req disponibilidadReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Disponible == nil {
		writeError(c, http.StatusBadRequest, "disponible is required")
		return
	}
	cam, err := h.camiones.SetDisponibilidad(c.Request.Context(), id, *req.Disponible)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cam)
}

func (h *CamionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.camiones.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
