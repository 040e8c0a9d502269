// README: Solicitud handlers: creation, reads, status view and finalization.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/solicitud"
	"logistica/internal/types"
)

type SolicitudHandler struct {
	solicitudes *solicitud.Service
}

func NewSolicitudHandler(svc *solicitud.Service) *SolicitudHandler {
	return &SolicitudHandler{solicitudes: svc}
}

type clienteReq struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	CUIT      string `json:"cuit"`
}

type contenedorReq struct {
	Numero  string  `json:"numero"`
	Tipo    string  `json:"tipo"`
	Peso    float64 `json:"peso"`
	Volumen float64 `json:"volumen"`
}

type createSolicitudReq struct {
	ClienteID     *int64           `json:"clienteId"`
	Cliente       *clienteReq      `json:"cliente"`
	ContenedorID  *int64           `json:"contenedorId"`
	Contenedor    *contenedorReq   `json:"contenedor"`
	Origen        string           `json:"origen"`
	Destino       string           `json:"destino"`
	CoordOrigen   types.Coordenada `json:"coordOrigen"`
	CoordDestino  types.Coordenada `json:"coordDestino"`
	Observaciones string           `json:"observaciones"`
}

func (h *SolicitudHandler) Create(c *gin.Context) {
	var req createSolicitudReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := solicitud.CreateCommand{
		ClienteID:     req.ClienteID,
		ContenedorID:  req.ContenedorID,
		Origen:        req.Origen,
		Destino:       req.Destino,
		OrigenCoord:   req.CoordOrigen,
		DestinoCoord:  req.CoordDestino,
		Observaciones: req.Observaciones,
	}
	if req.Cliente != nil {
		cmd.NuevoCliente = &cliente.Cliente{
			Nombre:    req.Cliente.Nombre,
			Email:     req.Cliente.Email,
			Telefono:  req.Cliente.Telefono,
			Direccion: req.Cliente.Direccion,
			CUIT:      req.Cliente.CUIT,
		}
	}
	if req.Contenedor != nil {
		cmd.NuevoContenedor = &contenedor.Contenedor{
			Numero:  req.Contenedor.Numero,
			Tipo:    req.Contenedor.Tipo,
			Peso:    req.Contenedor.Peso,
			Volumen: req.Contenedor.Volumen,
		}
	}

	sol, err := h.solicitudes.Create(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sol)
}

func (h *SolicitudHandler) List(c *gin.Context) {
	sols, err := h.solicitudes.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sols)
}

func (h *SolicitudHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sol, err := h.solicitudes.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sol)
}

func (h *SolicitudHandler) Estado(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.solicitudes.Estado(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

func (h *SolicitudHandler) Finalizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sol, err := h.solicitudes.Finalize(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sol)
}
