// README: Solicitud lifecycle service: creation of the request graph,
// finalization with real aggregates, and the composed status view.
package solicitud

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/types"
)

type Repository interface {
	List(ctx context.Context) ([]Solicitud, error)
	Get(ctx context.Context, id int64) (*Solicitud, error)
	CreateGraph(ctx context.Context, g CreateGraph) (*Solicitud, error)
	UpdateEstado(ctx context.Context, id int64, from, to Estado) (bool, error)
	Finalizar(ctx context.Context, id int64, costoFinal, tiempoReal float64) (bool, error)
}

type ClienteDirectory interface {
	Get(ctx context.Context, id int64) (*cliente.Cliente, error)
}

type ContenedorDirectory interface {
	Get(ctx context.Context, id int64) (*contenedor.Contenedor, error)
}

type RutaReader interface {
	GetRuta(ctx context.Context, id int64) (*ruta.Ruta, error)
	ListTramosByRuta(ctx context.Context, rutaID int64) ([]ruta.Tramo, error)
}

type Service struct {
	repo         Repository
	clientes     ClienteDirectory
	contenedores ContenedorDirectory
	rutas        RutaReader
	log          *zap.Logger
}

func NewService(repo Repository, clientes ClienteDirectory, contenedores ContenedorDirectory, rutas RutaReader, log *zap.Logger) *Service {
	return &Service{repo: repo, clientes: clientes, contenedores: contenedores, rutas: rutas, log: log}
}

// CreateCommand carries the request creation payload. Exactly one of
// ClienteID/NuevoCliente must be set, same for the contenedor pair.
type CreateCommand struct {
	ClienteID       *int64
	NuevoCliente    *cliente.Cliente
	ContenedorID    *int64
	NuevoContenedor *contenedor.Contenedor
	Origen          string
	Destino         string
	OrigenCoord     types.Coordenada
	DestinoCoord    types.Coordenada
	Observaciones   string
}

func (s *Service) List(ctx context.Context) ([]Solicitud, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Solicitud, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the command and persists the whole request graph. The
// request starts in BORRADOR with a route shell that only holds endpoints;
// distance and legs arrive later, when a route is assigned.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Solicitud, error) {
	if err := s.validate(ctx, cmd); err != nil {
		return nil, err
	}

	g := CreateGraph{
		NuevoCliente:    cmd.NuevoCliente,
		NuevoContenedor: cmd.NuevoContenedor,
		Observaciones:   cmd.Observaciones,
		Ruta: ruta.Ruta{
			Origen:       cmd.Origen,
			Destino:      cmd.Destino,
			OrigenCoord:  cmd.OrigenCoord,
			DestinoCoord: cmd.DestinoCoord,
		},
	}
	if cmd.ClienteID != nil {
		g.ClienteID = *cmd.ClienteID
	}
	if cmd.ContenedorID != nil {
		g.ContenedorID = *cmd.ContenedorID
	}

	sol, err := s.repo.CreateGraph(ctx, g)
	if err != nil {
		return nil, err
	}
	s.log.Info("solicitud created",
		zap.Int64("solicitud_id", sol.ID),
		zap.Int64("cliente_id", sol.ClienteID),
		zap.Int64("contenedor_id", sol.ContenedorID))
	return sol, nil
}

func (s *Service) validate(ctx context.Context, cmd CreateCommand) error {
	if (cmd.ClienteID == nil) == (cmd.NuevoCliente == nil) {
		return fmt.Errorf("%w: exactly one of clienteId or cliente must be provided", ErrValidation)
	}
	if (cmd.ContenedorID == nil) == (cmd.NuevoContenedor == nil) {
		return fmt.Errorf("%w: exactly one of contenedorId or contenedor must be provided", ErrValidation)
	}
	if cmd.NuevoCliente != nil && cmd.ContenedorID != nil {
		return fmt.Errorf("%w: an existing contenedor cannot belong to a cliente that does not exist yet", ErrValidation)
	}
	if strings.TrimSpace(cmd.Origen) == "" || strings.TrimSpace(cmd.Destino) == "" {
		return fmt.Errorf("%w: origen and destino are required", ErrValidation)
	}
	for _, c := range []types.Coordenada{cmd.OrigenCoord, cmd.DestinoCoord} {
		if c.Latitud < -90 || c.Latitud > 90 || c.Longitud < -180 || c.Longitud > 180 {
			return fmt.Errorf("%w: coordinates out of range", ErrValidation)
		}
	}

	if nc := cmd.NuevoCliente; nc != nil {
		if strings.TrimSpace(nc.Nombre) == "" || strings.TrimSpace(nc.Email) == "" {
			return fmt.Errorf("%w: cliente nombre and email are required", ErrValidation)
		}
	}
	if nc := cmd.NuevoContenedor; nc != nil {
		if strings.TrimSpace(nc.Numero) == "" {
			return fmt.Errorf("%w: contenedor numero is required", ErrValidation)
		}
		if nc.Peso <= 0 || nc.Volumen <= 0 {
			return fmt.Errorf("%w: contenedor peso and volumen must be positive", ErrValidation)
		}
	}

	if cmd.ClienteID != nil {
		if _, err := s.clientes.Get(ctx, *cmd.ClienteID); err != nil {
			return err
		}
	}
	if cmd.ContenedorID != nil {
		cont, err := s.contenedores.Get(ctx, *cmd.ContenedorID)
		if err != nil {
			return err
		}
		if cmd.ClienteID != nil && cont.ClienteID != *cmd.ClienteID {
			return fmt.Errorf("%w: contenedor %d does not belong to cliente %d", ErrValidation, cont.ID, *cmd.ClienteID)
		}
	}
	return nil
}

// Finalize closes the request, aggregating the real cost and elapsed time
// from the finished legs. Legs still open are reported back to the caller.
func (s *Service) Finalize(ctx context.Context, id int64) (*Solicitud, error) {
	sol, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// EN_TRANSITO is the normal path; ENTREGADA with a zero cost means the
	// last leg cascade flipped the state but aggregation is still owed.
	switch {
	case sol.Estado == EstadoEnTransito:
	case sol.Estado == EstadoEntregada && sol.CostoFinal == 0:
	default:
		return nil, fmt.Errorf("%w: solicitud %d is %s", ErrInvalidState, id, sol.Estado)
	}
	if sol.RutaID == nil {
		return nil, fmt.Errorf("%w: solicitud %d has no assigned route", ErrInvalidState, id)
	}

	tramos, err := s.rutas.ListTramosByRuta(ctx, *sol.RutaID)
	if err != nil {
		return nil, err
	}
	if len(tramos) == 0 {
		return nil, fmt.Errorf("%w: solicitud %d has no legs to settle", ErrInvalidState, id)
	}
	var pendientes []int64
	for _, t := range tramos {
		if t.Estado != ruta.TramoFinalizado {
			pendientes = append(pendientes, t.ID)
		}
	}
	if len(pendientes) > 0 {
		return nil, fmt.Errorf("%w: tramos pendientes de finalizar: %v", ErrInvalidState, pendientes)
	}

	var costo, horas float64
	for _, t := range tramos {
		costo += t.CostoReal
		if t.FechaRealInicio != nil && t.FechaRealFin != nil {
			horas += t.FechaRealFin.Sub(*t.FechaRealInicio).Hours()
		}
	}

	ok, err := s.repo.Finalizar(ctx, id, costo, horas)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: solicitud %d already finalized", ErrInvalidState, id)
	}
	s.log.Info("solicitud finalized",
		zap.Int64("solicitud_id", id),
		zap.Float64("costo_final", costo),
		zap.Float64("tiempo_real_horas", horas))
	return s.repo.Get(ctx, id)
}

// Estado builds the composed status view: container location, assigned
// route, leg history, progress percentage and a destination ETA hint.
func (s *Service) Estado(ctx context.Context, id int64) (*EstadoView, error) {
	sol, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &EstadoView{ID: sol.ID, Estado: sol.Estado}

	var r *ruta.Ruta
	var tramos []ruta.Tramo
	if sol.RutaID != nil {
		if r, err = s.rutas.GetRuta(ctx, *sol.RutaID); err != nil {
			return nil, err
		}
		if tramos, err = s.rutas.ListTramosByRuta(ctx, *sol.RutaID); err != nil {
			return nil, err
		}
	}
	view.RutaActual = r
	view.Historial = tramos

	cont, err := s.contenedores.Get(ctx, sol.ContenedorID)
	if err != nil {
		return nil, err
	}
	ce := &ContenedorEstado{
		ID:              cont.ID,
		Numero:          cont.Numero,
		Estado:          string(cont.Estado),
		UbicacionActual: ubicacion(cont.Estado, r, tramos),
	}
	if cl, err := s.clientes.Get(ctx, cont.ClienteID); err == nil {
		ce.NombreCliente = cl.Nombre
	}
	view.Contenedor = ce

	if len(tramos) > 0 {
		finalizados := 0
		for _, t := range tramos {
			if t.Estado == ruta.TramoFinalizado {
				finalizados++
			}
		}
		view.Progreso = float64(finalizados) / float64(len(tramos)) * 100
	}
	if sol.Estado == EstadoEnTransito && len(tramos) > 0 {
		if eta := tramos[len(tramos)-1].FechaEstimadaFin; eta != nil {
			view.ETADestino = eta.Format("2006-01-02 15:04")
		}
	}
	return view, nil
}

// ubicacion names where the container currently sits, derived from its
// state and the leg in progress.
func ubicacion(estado contenedor.Estado, r *ruta.Ruta, tramos []ruta.Tramo) string {
	switch estado {
	case contenedor.EstadoEnOrigen:
		if r != nil {
			return r.Origen
		}
		return "En origen"
	case contenedor.EstadoEnViaje:
		for _, t := range tramos {
			if t.Estado == ruta.TramoIniciado {
				return fmt.Sprintf("En viaje (tramo %d, %s)", t.Orden, t.Tipo)
			}
		}
		return "En viaje"
	case contenedor.EstadoEnDeposito:
		for i := len(tramos) - 1; i >= 0; i-- {
			if tramos[i].Estado == ruta.TramoFinalizado && tramos[i].DepositoDestinoID != nil {
				return fmt.Sprintf("En depósito %d", *tramos[i].DepositoDestinoID)
			}
		}
		return "En depósito"
	case contenedor.EstadoEntregado:
		if r != nil {
			return r.Destino
		}
		return "Entregado"
	}
	return string(estado)
}
