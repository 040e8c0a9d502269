// README: Tarifa handlers: CRUD reads, the active-tariff lookup, activation.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logistica/internal/flota/tarifa"
)

type TarifaHandler struct {
	tarifas *tarifa.Service
}

func NewTarifaHandler(svc *tarifa.Service) *TarifaHandler {
	return &TarifaHandler{tarifas: svc}
}

func (h *TarifaHandler) List(c *gin.Context) {
	out, err := h.tarifas.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

// Actual serves the single active tariff; the operaciones service calls this
// on every leg settlement.
func (h *TarifaHandler) Actual(c *gin.Context) {
	t, err := h.tarifas.Activa(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TarifaHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.tarifas.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type tarifaReq struct {
	CostoKmBase            float64    `json:"costoKmBase"`
	PrecioLitroCombustible float64    `json:"precioLitroCombustible"`
	CargoGestionPorTramo   float64    `json:"cargoGestionPorTramo"`
	CostoEstadiaDiaria     float64    `json:"costoEstadiaDiaria"`
	VigenciaDesde          *time.Time `json:"vigenciaDesde"`
	VigenciaHasta          *time.Time `json:"vigenciaHasta"`
}

func (h *TarifaHandler) Create(c *gin.Context) {
	var req tarifaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.tarifas.Create(c.Request.Context(), &tarifa.Tarifa{
		CostoKmBase:            req.CostoKmBase,
		PrecioLitroCombustible: req.PrecioLitroCombustible,
		CargoGestionPorTramo:   req.CargoGestionPorTramo,
		CostoEstadiaDiaria:     req.CostoEstadiaDiaria,
		VigenciaDesde:          req.VigenciaDesde,
		VigenciaHasta:          req.VigenciaHasta,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

func (h *TarifaHandler) Activar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.tarifas.Activar(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}
