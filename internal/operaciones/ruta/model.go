// README: Ruta and Tramo aggregates and the leg state machine table.
package ruta

import (
	"time"

	"logistica/internal/types"
)

// TramoEstado values; legs only ever move forward.
type TramoEstado string

const (
	TramoPendiente  TramoEstado = "PENDIENTE"
	TramoAsignado   TramoEstado = "ASIGNADO"
	TramoIniciado   TramoEstado = "INICIADO"
	TramoFinalizado TramoEstado = "FINALIZADO"
)

// Leg kinds as the operators load them. A leg whose tipo ends in DEPOSITO
// leaves the container at an intermediate warehouse.
const (
	TipoOrigenDestino    = "ORIGEN-DESTINO"
	TipoOrigenDeposito   = "ORIGEN-DEPOSITO"
	TipoDepositoDeposito = "DEPOSITO-DEPOSITO"
	TipoDepositoDestino  = "DEPOSITO-DESTINO"
)

// tramoTransitions is the forward-only leg flow; no cancellation path.
var tramoTransitions = map[TramoEstado]TramoEstado{
	TramoPendiente: TramoAsignado,
	TramoAsignado:  TramoIniciado,
	TramoIniciado:  TramoFinalizado,
}

func CanTransitionTramo(from, to TramoEstado) bool {
	return tramoTransitions[from] == to
}

type Ruta struct {
	ID                  int64            `json:"id"`
	Origen              string           `json:"origen"`
	Destino             string           `json:"destino"`
	OrigenCoord         types.Coordenada `json:"origenCoord"`
	DestinoCoord        types.Coordenada `json:"destinoCoord"`
	DistanciaKm         float64          `json:"distanciaKm"`
	TiempoEstimadoHoras int              `json:"tiempoEstimadoHoras"`
}

type Tramo struct {
	ID                  int64            `json:"id"`
	RutaID              int64            `json:"rutaId"`
	Orden               int              `json:"orden"`
	Tipo                string           `json:"tipo"`
	Estado              TramoEstado      `json:"estado"`
	PuntoInicio         types.Coordenada `json:"puntoInicio"`
	PuntoFin            types.Coordenada `json:"puntoFin"`
	DistanciaKm         float64          `json:"distanciaKm"`
	TiempoEstimadoHoras int              `json:"tiempoEstimadoHoras"`
	FechaEstimadaInicio *time.Time       `json:"fechaEstimadaInicio,omitempty"`
	FechaEstimadaFin    *time.Time       `json:"fechaEstimadaFin,omitempty"`
	FechaRealInicio     *time.Time       `json:"fechaRealInicio,omitempty"`
	FechaRealFin        *time.Time       `json:"fechaRealFin,omitempty"`
	CostoReal           float64          `json:"costoReal"`
	CamionID            *int64           `json:"camionId,omitempty"`
	DepositoOrigenID    *int64           `json:"depositoOrigenId,omitempty"`
	DepositoDestinoID   *int64           `json:"depositoDestinoId,omitempty"`
}

// TerminaEnDeposito reports whether the leg leaves the container at a
// warehouse rather than the final destination.
func (t Tramo) TerminaEnDeposito() bool {
	return t.Tipo == TipoOrigenDeposito || t.Tipo == TipoDepositoDeposito
}

// TramoTentativo is one leg of a route proposal. Projection only, never
// persisted.
type TramoTentativo struct {
	Orden               int              `json:"orden"`
	Tipo                string           `json:"tipo"`
	PuntoInicio         types.Coordenada `json:"puntoInicio"`
	PuntoFin            types.Coordenada `json:"puntoFin"`
	DistanciaKm         float64          `json:"distanciaKm"`
	TiempoEstimadoHoras float64          `json:"tiempoEstimadoHoras"`
	CostoAproximado     float64          `json:"costoAproximado"`
	Observaciones       string           `json:"observaciones"`
}

// RutaTentativa is a route proposal for operator evaluation.
type RutaTentativa struct {
	Tramos              []TramoTentativo `json:"tramos"`
	CostoEstimadoTotal  float64          `json:"costoEstimadoTotal"`
	TiempoEstimadoTotal float64          `json:"tiempoEstimadoTotal"`
	DistanciaTotal      float64          `json:"distanciaTotal"`
	CantidadTramos      int              `json:"cantidadTramos"`
	CantidadDepositos   int              `json:"cantidadDepositos"`
	TipoRuta            string           `json:"tipoRuta"`
	Descripcion         string           `json:"descripcion"`
}

// TramoSpec is the operator-supplied definition of one leg when committing a
// route.
type TramoSpec struct {
	Orden               int              `json:"orden"`
	Tipo                string           `json:"tipo"`
	PuntoInicio         types.Coordenada `json:"puntoInicio"`
	PuntoFin            types.Coordenada `json:"puntoFin"`
	FechaEstimadaInicio *time.Time       `json:"fechaEstimadaInicio,omitempty"`
	FechaEstimadaFin    *time.Time       `json:"fechaEstimadaFin,omitempty"`
	DepositoOrigenID    *int64           `json:"depositoOrigenId,omitempty"`
	DepositoDestinoID   *int64           `json:"depositoDestinoId,omitempty"`
}
