// README: Solicitud aggregate and status definitions.
package solicitud

import (
	"errors"
	"time"

	"logistica/internal/operaciones/ruta"
)

var (
	ErrNotFound           = errors.New("solicitud no encontrada")
	ErrContenedorNotFound = errors.New("contenedor no encontrado")
	ErrValidation         = errors.New("datos de solicitud invalidos")
	ErrInvalidState       = errors.New("estado de solicitud invalido")
)

type Estado string

const (
	EstadoBorrador   Estado = "BORRADOR"
	EstadoProgramada Estado = "PROGRAMADA"
	EstadoEnTransito Estado = "EN_TRANSITO"
	EstadoEntregada  Estado = "ENTREGADA"
)

// transitions is the forward-only request flow; no state is ever skipped or
// revisited.
var transitions = map[Estado]Estado{
	EstadoBorrador:   EstadoProgramada,
	EstadoProgramada: EstadoEnTransito,
	EstadoEnTransito: EstadoEntregada,
}

func CanTransition(from, to Estado) bool {
	return transitions[from] == to
}

// Solicitud is the aggregate root of a shipment request. CostoFinal and
// TiempoReal are written once, at finalization.
type Solicitud struct {
	ID             int64     `json:"id"`
	FechaSolicitud time.Time `json:"fechaSolicitud"`
	Estado         Estado    `json:"estado"`
	Observaciones  string    `json:"observaciones"`
	ClienteID      int64     `json:"clienteId"`
	ContenedorID   int64     `json:"contenedorId"`
	RutaID         *int64    `json:"rutaId,omitempty"`
	CostoEstimado  float64   `json:"costoEstimado"`
	TiempoEstimado float64   `json:"tiempoEstimado"`
	CostoFinal     float64   `json:"costoFinal"`
	TiempoReal     float64   `json:"tiempoReal"`
}

// ContenedorEstado is the container slice of the composed status view.
type ContenedorEstado struct {
	ID             int64  `json:"id"`
	Numero         string `json:"numero"`
	Estado         string `json:"estado"`
	UbicacionActual string `json:"ubicacionActual"`
	NombreCliente  string `json:"nombreCliente,omitempty"`
}

// EstadoView is the composed status of a request: container location, route,
// leg history, progress and an ETA hint.
type EstadoView struct {
	ID         int64             `json:"id"`
	Estado     Estado            `json:"estado"`
	Contenedor *ContenedorEstado `json:"contenedor,omitempty"`
	RutaActual *ruta.Ruta        `json:"rutaActual,omitempty"`
	Historial  []ruta.Tramo      `json:"historialTramos"`
	Progreso   float64           `json:"progreso"`
	ETADestino string            `json:"etaDestino"`
}
