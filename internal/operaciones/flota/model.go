// README: Local projections of flota-owned data and the directory port.
package flota

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("referencia de camion no encontrada")
	// ErrUpstream covers any failed call to the flota service.
	ErrUpstream = errors.New("servicio flota no disponible")
)

// CamionReference is a read cache of a flota-owned truck. Authoritative
// availability lives in the flota service; this row is the local fallback.
type CamionReference struct {
	ID               int64   `json:"id"`
	Dominio          string  `json:"dominio"`
	CapacidadPeso    float64 `json:"capacidadPeso"`
	CapacidadVolumen float64 `json:"capacidadVolumen"`
	Disponible       bool    `json:"disponible"`
}

// Camion is the live truck record served by the flota service.
type Camion struct {
	ID                      int64   `json:"id"`
	Dominio                 string  `json:"dominio"`
	NombreTransportista     string  `json:"nombreTransportista"`
	Telefono                string  `json:"telefono"`
	CapacidadPeso           float64 `json:"capacidadPeso"`
	CapacidadVolumen        float64 `json:"capacidadVolumen"`
	ConsumoCombustiblePorKm float64 `json:"consumoCombustiblePorKm"`
	CostoPorKm              float64 `json:"costoPorKm"`
	Disponible              bool    `json:"disponible"`
}

// Tarifa is the flota-owned pricing policy. Exactly one is active at a time.
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

// Directory is the contract against the flota service. Calls are a single
// attempt; failures map to ErrUpstream (or ErrNotFound for missing records).
type Directory interface {
	TarifaActiva(ctx context.Context) (*Tarifa, error)
	Camion(ctx context.Context, id int64) (*Camion, error)
	SetDisponibilidad(ctx context.Context, id int64, disponible bool) error
}
