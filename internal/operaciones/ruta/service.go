// README: Route planner: tentative proposals and route commitment.
package ruta

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"logistica/internal/types"
)

var (
	ErrNotFound          = errors.New("ruta no encontrada")
	ErrTramoNotFound     = errors.New("tramo no encontrado")
	ErrSolicitudNotFound = errors.New("solicitud no encontrada")
	// ErrSolicitudNoProgramable rejects route commitment once the solicitud
	// left BORRADOR; the workflow never moves backward.
	ErrSolicitudNoProgramable = errors.New("la solicitud ya no admite asignacion de ruta")
	ErrValidation             = errors.New("especificacion de tramos invalida")
	// ErrUpstream marks a failed distance lookup; the whole operation aborts.
	ErrUpstream = errors.New("consulta de distancia fallida")
)

// Rate used only for tentative-route cost projections. The authoritative
// per-leg cost is computed at leg finalization from the active tariff.
const costoAproxPorKm = 5.0

// DistanceOracle resolves road distance and duration for a coordinate pair.
type DistanceOracle interface {
	GetDistance(ctx context.Context, origen, destino types.Coordenada) (types.Distancia, error)
}

// Repository is the persistence contract for routes and legs.
type Repository interface {
	GetRuta(ctx context.Context, id int64) (*Ruta, error)
	RutaDeSolicitud(ctx context.Context, solicitudID int64) (*Ruta, error)
	CreateConTramos(ctx context.Context, r *Ruta, tramos []Tramo, solicitudID int64) error
	GetTramo(ctx context.Context, id int64) (*Tramo, error)
	ListTramos(ctx context.Context) ([]Tramo, error)
	ListTramosByRuta(ctx context.Context, rutaID int64) ([]Tramo, error)
	ListTramosAsignados(ctx context.Context, camionID int64) ([]Tramo, error)
}

type Planner struct {
	repo   Repository
	oracle DistanceOracle
	log    *zap.Logger
}

func NewPlanner(repo Repository, oracle DistanceOracle, log *zap.Logger) *Planner {
	return &Planner{repo: repo, oracle: oracle, log: log}
}

func (p *Planner) GetRuta(ctx context.Context, id int64) (*Ruta, error) {
	return p.repo.GetRuta(ctx, id)
}

func (p *Planner) GetTramo(ctx context.Context, id int64) (*Tramo, error) {
	return p.repo.GetTramo(ctx, id)
}

func (p *Planner) ListTramos(ctx context.Context) ([]Tramo, error) {
	return p.repo.ListTramos(ctx)
}

func (p *Planner) ListTramosByRuta(ctx context.Context, rutaID int64) ([]Tramo, error) {
	return p.repo.ListTramosByRuta(ctx, rutaID)
}

func (p *Planner) ListTramosAsignados(ctx context.Context, camionID int64) ([]Tramo, error) {
	return p.repo.ListTramosAsignados(ctx, camionID)
}

// TentativeRoutes builds route proposals for a solicitud. Currently a single
// direct proposal; the result is a projection and is never persisted.
func (p *Planner) TentativeRoutes(ctx context.Context, solicitudID int64) ([]RutaTentativa, error) {
	r, err := p.repo.RutaDeSolicitud(ctx, solicitudID)
	if err != nil {
		return nil, err
	}

	d, err := p.oracle.GetDistance(ctx, r.OrigenCoord, r.DestinoCoord)
	if err != nil {
		p.log.Error("distance lookup failed",
			zap.Int64("solicitud_id", solicitudID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	distanciaKm := d.Km()
	tiempoHoras := d.Horas()
	costo := distanciaKm * costoAproxPorKm

	tramo := TramoTentativo{
		Orden:               1,
		Tipo:                TipoOrigenDestino,
		PuntoInicio:         r.OrigenCoord,
		PuntoFin:            r.DestinoCoord,
		DistanciaKm:         distanciaKm,
		TiempoEstimadoHoras: tiempoHoras,
		CostoAproximado:     costo,
		Observaciones:       "Ruta directa sin paradas intermedias",
	}

	return []RutaTentativa{{
		Tramos:              []TramoTentativo{tramo},
		CostoEstimadoTotal:  costo,
		TiempoEstimadoTotal: tiempoHoras,
		DistanciaTotal:      distanciaKm,
		CantidadTramos:      1,
		CantidadDepositos:   0,
		TipoRuta:            "DIRECTA",
		Descripcion:         fmt.Sprintf("Ruta directa de %.2f km sin paradas intermedias", distanciaKm),
	}}, nil
}

// Assign commits a route for a solicitud: resolves distance for every leg,
// persists the route with its legs in PENDIENTE, binds the route to the
// solicitud and schedules it. All distance lookups happen before any write,
// so an oracle failure leaves nothing behind.
func (p *Planner) Assign(ctx context.Context, solicitudID int64, specs []TramoSpec) (*Ruta, []Tramo, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, nil, err
	}

	// The provisional route created with the solicitud carries the textual
	// origin/destination; the committed route inherits them.
	shell, err := p.repo.RutaDeSolicitud(ctx, solicitudID)
	if err != nil {
		return nil, nil, err
	}

	ordered := make([]TramoSpec, len(specs))
	copy(ordered, specs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Orden < ordered[j].Orden })

	tramos := make([]Tramo, 0, len(ordered))
	var distanciaTotal, tiempoTotal float64
	for _, spec := range ordered {
		d, err := p.oracle.GetDistance(ctx, spec.PuntoInicio, spec.PuntoFin)
		if err != nil {
			p.log.Error("distance lookup failed for leg",
				zap.Int64("solicitud_id", solicitudID),
				zap.Int("orden", spec.Orden), zap.Error(err))
			return nil, nil, fmt.Errorf("%w: tramo %d: %v", ErrUpstream, spec.Orden, err)
		}

		distanciaTotal += d.Km()
		tiempoTotal += d.Horas()

		tramos = append(tramos, Tramo{
			Orden:               spec.Orden,
			Tipo:                spec.Tipo,
			Estado:              TramoPendiente,
			PuntoInicio:         spec.PuntoInicio,
			PuntoFin:            spec.PuntoFin,
			DistanciaKm:         d.Km(),
			TiempoEstimadoHoras: int(math.Ceil(d.Horas())),
			FechaEstimadaInicio: spec.FechaEstimadaInicio,
			FechaEstimadaFin:    spec.FechaEstimadaFin,
			DepositoOrigenID:    spec.DepositoOrigenID,
			DepositoDestinoID:   spec.DepositoDestinoID,
		})
	}

	primero, ultimo := ordered[0], ordered[len(ordered)-1]
	r := &Ruta{
		Origen:              shell.Origen,
		Destino:             shell.Destino,
		OrigenCoord:         primero.PuntoInicio,
		DestinoCoord:        ultimo.PuntoFin,
		DistanciaKm:         distanciaTotal,
		TiempoEstimadoHoras: int(math.Ceil(tiempoTotal)),
	}

	if err := p.repo.CreateConTramos(ctx, r, tramos, solicitudID); err != nil {
		return nil, nil, err
	}

	p.log.Info("ruta asignada",
		zap.Int64("solicitud_id", solicitudID),
		zap.Int64("ruta_id", r.ID),
		zap.Int("tramos", len(tramos)),
		zap.Float64("distancia_km", distanciaTotal))
	return r, tramos, nil
}

// validateSpecs enforces that orden values are exactly 1..N with no
// duplicates.
func validateSpecs(specs []TramoSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: se requiere al menos un tramo", ErrValidation)
	}
	seen := make(map[int]bool, len(specs))
	for _, spec := range specs {
		if spec.Orden < 1 || spec.Orden > len(specs) {
			return fmt.Errorf("%w: orden %d fuera de rango 1..%d", ErrValidation, spec.Orden, len(specs))
		}
		if seen[spec.Orden] {
			return fmt.Errorf("%w: orden %d duplicado", ErrValidation, spec.Orden)
		}
		seen[spec.Orden] = true
		if spec.Tipo == "" {
			return fmt.Errorf("%w: tramo %d sin tipo", ErrValidation, spec.Orden)
		}
	}
	return nil
}
