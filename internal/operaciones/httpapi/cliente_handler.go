// README: Cliente CRUD handlers.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/cliente"
)

type ClienteHandler struct {
	clientes *cliente.Service
}

func NewClienteHandler(svc *cliente.Service) *ClienteHandler {
	return &ClienteHandler{clientes: svc}
}

func (h *ClienteHandler) List(c *gin.Context) {
	out, err := h.clientes.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *ClienteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cl, err := h.clientes.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cl)
}

func (h *ClienteHandler) Create(c *gin.Context) {
	var req clienteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cl, err := h.clientes.Create(c.Request.Context(), &cliente.Cliente{
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		CUIT:      req.CUIT,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, cl)
}

func (h *ClienteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req clienteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cl, err := h.clientes.Update(c.Request.Context(), &cliente.Cliente{
		ID:        id,
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		CUIT:      req.CUIT,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cl)
}

func (h *ClienteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.clientes.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
