// README: Contenedor handlers, including the pending-containers view.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/contenedor"
)

type ContenedorHandler struct {
	contenedores *contenedor.Service
}

func NewContenedorHandler(svc *contenedor.Service) *ContenedorHandler {
	return &ContenedorHandler{contenedores: svc}
}

func (h *ContenedorHandler) List(c *gin.Context) {
	out, err := h.contenedores.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *ContenedorHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cont, err := h.contenedores.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cont)
}

type createContenedorReq struct {
	contenedorReq
	ClienteID int64 `json:"clienteId"`
}

func (h *ContenedorHandler) Create(c *gin.Context) {
	var req createContenedorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cont, err := h.contenedores.Create(c.Request.Context(), &contenedor.Contenedor{
		Numero:    req.Numero,
		Tipo:      req.Tipo,
		Peso:      req.Peso,
		Volumen:   req.Volumen,
		Estado:    contenedor.EstadoEnOrigen,
		ClienteID: req.ClienteID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, cont)
}

func (h *ContenedorHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req createContenedorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cont, err := h.contenedores.Update(c.Request.Context(), &contenedor.Contenedor{
		ID:        id,
		Numero:    req.Numero,
		Tipo:      req.Tipo,
		Peso:      req.Peso,
		Volumen:   req.Volumen,
		ClienteID: req.ClienteID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cont)
}

func (h *ContenedorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.contenedores.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Pendientes lists containers whose solicitud is still in BORRADOR.
func (h *ContenedorHandler) Pendientes(c *gin.Context) {
	out, err := h.contenedores.ListPendientes(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}
