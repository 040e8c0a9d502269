// README: Deposito handlers.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/flota/deposito"
	"logistica/internal/types"
)

type DepositoHandler struct {
	depositos *deposito.Service
}

func NewDepositoHandler(svc *deposito.Service) *DepositoHandler {
	return &DepositoHandler{depositos: svc}
}

func (h *DepositoHandler) List(c *gin.Context) {
	out, err := h.depositos.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *DepositoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.depositos.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

type depositoReq struct {
	Nombre     string           `json:"nombre"`
	Direccion  string           `json:"direccion"`
	Coordenada types.Coordenada `json:"coordenada"`
}

func (h *DepositoHandler) Create(c *gin.Context) {
	var req depositoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.depositos.Create(c.Request.Context(), &deposito.Deposito{
		Nombre:     req.Nombre,
		Direccion:  req.Direccion,
		Coordenada: req.Coordenada,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DepositoHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req depositoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.depositos.Update(c.Request.Context(), &deposito.Deposito{
		ID:         id,
		Nombre:     req.Nombre,
		Direccion:  req.Direccion,
		Coordenada: req.Coordenada,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DepositoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.depositos.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
