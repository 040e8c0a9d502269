// README: Leg execution service: truck assignment with capacity and
// availability checks, start/finish transitions, real-cost settlement and
// the completion cascade.
package tramo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/flota"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/operaciones/solicitud"
)

var (
	ErrNotFound         = errors.New("tramo no encontrado")
	ErrConflict         = errors.New("conflicto de estado de tramo")
	ErrCapacityExceeded = errors.New("capacidad del camion excedida")
	ErrUpstream         = errors.New("servicio flota no disponible")
)

type TramoRepository interface {
	GetTramo(ctx context.Context, id int64) (*Tramo, error)
	ListTramosByRuta(ctx context.Context, rutaID int64) ([]Tramo, error)
	AsignarCamion(ctx context.Context, tramoID, camionID int64) (bool, error)
	MarcarIniciado(ctx context.Context, tramoID int64) (bool, error)
	MarcarFinalizado(ctx context.Context, tramoID int64, costoReal float64) (bool, error)
}

type SolicitudReader interface {
	GetByRutaID(ctx context.Context, rutaID int64) (*solicitud.Solicitud, error)
	UpdateEstado(ctx context.Context, id int64, from, to solicitud.Estado) (bool, error)
}

type ContenedorWriter interface {
	Get(ctx context.Context, id int64) (*contenedor.Contenedor, error)
	UpdateEstado(ctx context.Context, id int64, estado contenedor.Estado) error
}

// ReferenceCache is the local projection of flota trucks, written through on
// every availability decision.
type ReferenceCache interface {
	Upsert(ctx context.Context, c *flota.CamionReference) error
	SetDisponible(ctx context.Context, id int64, disponible bool) error
}

// Tramo is re-exported so handlers depend on one package for leg operations.
type Tramo = ruta.Tramo

type Service struct {
	tramos      TramoRepository
	solicitudes SolicitudReader
	contenedores ContenedorWriter
	directory   flota.Directory
	refs        ReferenceCache
	log         *zap.Logger
}

func NewService(tramos TramoRepository, solicitudes SolicitudReader, contenedores ContenedorWriter, directory flota.Directory, refs ReferenceCache, log *zap.Logger) *Service {
	return &Service{
		tramos:       tramos,
		solicitudes:  solicitudes,
		contenedores: contenedores,
		directory:    directory,
		refs:         refs,
		log:          log,
	}
}

// AssignCamion attaches an available truck to a pending leg. The truck is
// always resolved live from the flota service so availability decisions
// never run on a stale cache; the local reference is refreshed from the
// answer.
func (s *Service) AssignCamion(ctx context.Context, tramoID, camionID int64) (*Tramo, error) {
	t, err := s.tramos.GetTramo(ctx, tramoID)
	if err != nil {
		return nil, err
	}
	if !ruta.CanTransitionTramo(t.Estado, ruta.TramoAsignado) || t.CamionID != nil {
		return nil, fmt.Errorf("%w: tramo %d is %s", ErrConflict, tramoID, t.Estado)
	}

	camion, err := s.directory.Camion(ctx, camionID)
	if err != nil {
		if errors.Is(err, flota.ErrNotFound) {
			return nil, fmt.Errorf("%w: camion %d", flota.ErrNotFound, camionID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !camion.Disponible {
		return nil, fmt.Errorf("%w: camion %d is not available", ErrConflict, camionID)
	}

	sol, err := s.solicitudes.GetByRutaID(ctx, t.RutaID)
	if err != nil {
		return nil, err
	}
	cont, err := s.contenedores.Get(ctx, sol.ContenedorID)
	if err != nil {
		return nil, err
	}
	// Equality is fine, only a strictly smaller capacity rejects.
	if camion.CapacidadPeso < cont.Peso {
		return nil, fmt.Errorf("%w: peso %.1fkg > capacidad %.1fkg", ErrCapacityExceeded, cont.Peso, camion.CapacidadPeso)
	}
	if camion.CapacidadVolumen < cont.Volumen {
		return nil, fmt.Errorf("%w: volumen %.1fm3 > capacidad %.1fm3", ErrCapacityExceeded, cont.Volumen, camion.CapacidadVolumen)
	}

	ok, err := s.tramos.AsignarCamion(ctx, tramoID, camionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: tramo %d was assigned concurrently", ErrConflict, tramoID)
	}

	ref := &flota.CamionReference{
		ID:               camion.ID,
		Dominio:          camion.Dominio,
		CapacidadPeso:    camion.CapacidadPeso,
		CapacidadVolumen: camion.CapacidadVolumen,
		Disponible:       false,
	}
	if err := s.refs.Upsert(ctx, ref); err != nil {
		return nil, err
	}
	if err := s.directory.SetDisponibilidad(ctx, camionID, false); err != nil {
		// The leg keeps its truck; the directory catches up on release.
		s.log.Warn("could not mark camion unavailable upstream",
			zap.Int64("camion_id", camionID), zap.Error(err))
	}

	s.log.Info("camion assigned",
		zap.Int64("tramo_id", tramoID),
		zap.Int64("camion_id", camionID),
		zap.String("dominio", camion.Dominio))
	return s.tramos.GetTramo(ctx, tramoID)
}

// Start moves an assigned leg into transit. Legs run strictly in orden: a
// leg cannot start while an earlier leg of the same route is unfinished.
func (s *Service) Start(ctx context.Context, tramoID int64) (*Tramo, error) {
	t, err := s.tramos.GetTramo(ctx, tramoID)
	if err != nil {
		return nil, err
	}
	if !ruta.CanTransitionTramo(t.Estado, ruta.TramoIniciado) {
		return nil, fmt.Errorf("%w: tramo %d is %s", ErrConflict, tramoID, t.Estado)
	}

	hermanos, err := s.tramos.ListTramosByRuta(ctx, t.RutaID)
	if err != nil {
		return nil, err
	}
	for _, h := range hermanos {
		if h.Orden < t.Orden && h.Estado != ruta.TramoFinalizado {
			return nil, fmt.Errorf("%w: tramo %d cannot start before tramo orden=%d finishes", ErrConflict, tramoID, h.Orden)
		}
	}

	ok, err := s.tramos.MarcarIniciado(ctx, tramoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: tramo %d changed state concurrently", ErrConflict, tramoID)
	}

	sol, err := s.solicitudes.GetByRutaID(ctx, t.RutaID)
	if err != nil {
		return nil, err
	}
	if err := s.contenedores.UpdateEstado(ctx, sol.ContenedorID, contenedor.EstadoEnViaje); err != nil {
		return nil, err
	}
	// Only the first leg promotes the request; the guard makes later starts
	// a no-op.
	if solicitud.CanTransition(sol.Estado, solicitud.EstadoEnTransito) {
		if _, err := s.solicitudes.UpdateEstado(ctx, sol.ID, solicitud.EstadoProgramada, solicitud.EstadoEnTransito); err != nil {
			return nil, err
		}
	}

	s.log.Info("tramo started", zap.Int64("tramo_id", tramoID), zap.Int("orden", t.Orden))
	return s.tramos.GetTramo(ctx, tramoID)
}

// Finish settles a leg in transit: computes the real cost from the active
// tariff and the live truck record, flips the container location and, when
// it was the last leg, cascades the delivered status. Aggregate cost and
// time on the solicitud stay zero until Finalize runs.
func (s *Service) Finish(ctx context.Context, tramoID int64) (*Tramo, error) {
	t, err := s.tramos.GetTramo(ctx, tramoID)
	if err != nil {
		return nil, err
	}
	if !ruta.CanTransitionTramo(t.Estado, ruta.TramoFinalizado) {
		return nil, fmt.Errorf("%w: tramo %d is %s", ErrConflict, tramoID, t.Estado)
	}
	if t.CamionID == nil {
		return nil, fmt.Errorf("%w: tramo %d has no truck", ErrConflict, tramoID)
	}

	tarifa, err := s.directory.TarifaActiva(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: tarifa activa: %v", ErrUpstream, err)
	}
	camion, err := s.directory.Camion(ctx, *t.CamionID)
	if err != nil {
		return nil, fmt.Errorf("%w: camion %d: %v", ErrUpstream, *t.CamionID, err)
	}

	costo := costoReal(tarifa, camion, t, time.Now())

	ok, err := s.tramos.MarcarFinalizado(ctx, tramoID, costo)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: tramo %d changed state concurrently", ErrConflict, tramoID)
	}

	if err := s.cascade(ctx, t); err != nil {
		return nil, err
	}
	s.release(ctx, *t.CamionID)

	s.log.Info("tramo finished",
		zap.Int64("tramo_id", tramoID),
		zap.Float64("costo_real", costo))
	return s.tramos.GetTramo(ctx, tramoID)
}

// costoReal adds the four settlement components: flat management fee,
// mileage, fuel, and warehouse stay when the leg ends at a deposito.
func costoReal(tarifa *flota.Tarifa, camion *flota.Camion, t *Tramo, now time.Time) float64 {
	costo := tarifa.CargoGestionPorTramo
	costo += camion.CostoPorKm * t.DistanciaKm
	costo += camion.ConsumoCombustiblePorKm * t.DistanciaKm * tarifa.PrecioLitroCombustible

	if t.DepositoDestinoID != nil && t.FechaRealInicio != nil {
		horas := now.Sub(*t.FechaRealInicio).Hours()
		if horas > 0 {
			dias := math.Ceil(horas / 24)
			if dias < 1 {
				dias = 1
			}
			costo += dias * tarifa.CostoEstadiaDiaria
		}
	}
	return costo
}

// cascade applies the post-finish side effects on container and request.
// The solicitud flip here is a plain status change; the cost aggregate is
// owned by the explicit finalize operation.
func (s *Service) cascade(ctx context.Context, t *Tramo) error {
	hermanos, err := s.tramos.ListTramosByRuta(ctx, t.RutaID)
	if err != nil {
		return err
	}
	todosFinalizados := true
	for _, h := range hermanos {
		if h.Estado != ruta.TramoFinalizado {
			todosFinalizados = false
			break
		}
	}

	sol, err := s.solicitudes.GetByRutaID(ctx, t.RutaID)
	if err != nil {
		return err
	}

	if todosFinalizados {
		if err := s.contenedores.UpdateEstado(ctx, sol.ContenedorID, contenedor.EstadoEntregado); err != nil {
			return err
		}
		if _, err := s.solicitudes.UpdateEstado(ctx, sol.ID, solicitud.EstadoEnTransito, solicitud.EstadoEntregada); err != nil {
			return err
		}
		return nil
	}
	if t.TerminaEnDeposito() {
		return s.contenedores.UpdateEstado(ctx, sol.ContenedorID, contenedor.EstadoEnDeposito)
	}
	return nil
}

// release hands the truck back. Upstream failure degrades to the local
// cache so the truck is not stranded as busy on our side.
func (s *Service) release(ctx context.Context, camionID int64) {
	if err := s.directory.SetDisponibilidad(ctx, camionID, true); err != nil {
		s.log.Warn("could not release camion upstream, flipping local cache only",
			zap.Int64("camion_id", camionID), zap.Error(err))
		if err := s.refs.SetDisponible(ctx, camionID, true); err != nil {
			s.log.Error("local camion cache update failed", zap.Int64("camion_id", camionID), zap.Error(err))
		}
		return
	}
	if err := s.refs.SetDisponible(ctx, camionID, true); err != nil {
		s.log.Warn("local camion cache update failed", zap.Int64("camion_id", camionID), zap.Error(err))
	}
}
