// README: Tarifa entity; at most one row is active at a time.
package tarifa

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("tarifa no encontrada")
	ErrValidation = errors.New("datos de tarifa invalidos")
	// ErrSinActiva is the 404 of the tarifas/actual lookup.
	ErrSinActiva = errors.New("no hay tarifa activa")
)

type Tarifa struct {
	ID                     int64      `json:"id"`
	CostoKmBase            float64    `json:"costoKmBase"`
	PrecioLitroCombustible float64    `json:"precioLitroCombustible"`
	CargoGestionPorTramo   float64    `json:"cargoGestionPorTramo"`
	CostoEstadiaDiaria     float64    `json:"costoEstadiaDiaria"`
	VigenciaDesde          *time.Time `json:"vigenciaDesde"`
	VigenciaHasta          *time.Time `json:"vigenciaHasta"`
	Activa                 bool       `json:"activa"`
}
