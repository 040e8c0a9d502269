// README: Handlers for the local truck reference cache.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/flota"
)

type CamionHandler struct {
	refs *flota.Store
}

func NewCamionHandler(refs *flota.Store) *CamionHandler {
	return &CamionHandler{refs: refs}
}

func (h *CamionHandler) List(c *gin.Context) {
	out, err := h.refs.List(c.Request.Context())
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
	ref, err := h.refs.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ref)
}

type syncCamionReq struct {
	Dominio          string  `json:"dominio"`
	CapacidadPeso    float64 `json:"capacidadPeso"`
	CapacidadVolumen float64 `json:"capacidadVolumen"`
	Disponible       bool    `json:"disponible"`
}

// Sync upserts one reference row from flota-owned data. The id in the path
// is the flota id; rows here are never generated locally.
func (h *CamionHandler) Sync(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req syncCamionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Dominio == "" {
		writeError(c, http.StatusBadRequest, "dominio is required")
		return
	}
	ref := &flota.CamionReference{
		ID:               id,
		Dominio:          req.Dominio,
		CapacidadPeso:    req.CapacidadPeso,
		CapacidadVolumen: req.CapacidadVolumen,
		Disponible:       req.Disponible,
	}
	if err := h.refs.Upsert(c.Request.Context(), ref); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ref)
}
