package tramo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/flota"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/operaciones/solicitud"
	"logistica/internal/types"
)

// memWorld is a single in-memory store shared by the solicitud, ruta and
// tramo services, so the whole delivery workflow can run end to end.
type memWorld struct {
	sol    *solicitud.Solicitud
	cont   *contenedor.Contenedor
	rutas  map[int64]*ruta.Ruta
	legs   map[int64]*ruta.Tramo
	nextID int64
}

func newMemWorld() *memWorld {
	return &memWorld{
		rutas:  make(map[int64]*ruta.Ruta),
		legs:   make(map[int64]*ruta.Tramo),
		nextID: 1,
	}
}

func (w *memWorld) id() int64 {
	id := w.nextID
	w.nextID++
	return id
}

// solicitud.Repository

func (w *memWorld) List(ctx context.Context) ([]solicitud.Solicitud, error) {
	if w.sol == nil {
		return nil, nil
	}
	return []solicitud.Solicitud{*w.sol}, nil
}

func (w *memWorld) Get(ctx context.Context, id int64) (*solicitud.Solicitud, error) {
	if w.sol == nil || w.sol.ID != id {
		return nil, solicitud.ErrNotFound
	}
	cp := *w.sol
	return &cp, nil
}

func (w *memWorld) GetByRutaID(ctx context.Context, rutaID int64) (*solicitud.Solicitud, error) {
	if w.sol == nil || w.sol.RutaID == nil || *w.sol.RutaID != rutaID {
		return nil, solicitud.ErrNotFound
	}
	cp := *w.sol
	return &cp, nil
}

func (w *memWorld) CreateGraph(ctx context.Context, g solicitud.CreateGraph) (*solicitud.Solicitud, error) {
	if g.NuevoContenedor != nil {
		c := *g.NuevoContenedor
		c.ID = w.id()
		c.Estado = contenedor.EstadoEnOrigen
		w.cont = &c
	}
	shell := g.Ruta
	shell.ID = w.id()
	w.rutas[shell.ID] = &shell

	rutaID := shell.ID
	w.sol = &solicitud.Solicitud{
		ID:            w.id(),
		Estado:        solicitud.EstadoBorrador,
		RutaID:        &rutaID,
		ContenedorID:  w.cont.ID,
		Observaciones: g.Observaciones,
	}
	cp := *w.sol
	return &cp, nil
}

func (w *memWorld) UpdateEstado(ctx context.Context, id int64, from, to solicitud.Estado) (bool, error) {
	if w.sol == nil || w.sol.ID != id || w.sol.Estado != from {
		return false, nil
	}
	w.sol.Estado = to
	return true, nil
}

func (w *memWorld) Finalizar(ctx context.Context, id int64, costoFinal, tiempoReal float64) (bool, error) {
	if w.sol == nil || w.sol.ID != id {
		return false, nil
	}
	settleable := w.sol.Estado == solicitud.EstadoEnTransito ||
		(w.sol.Estado == solicitud.EstadoEntregada && w.sol.CostoFinal == 0)
	if !settleable {
		return false, nil
	}
	w.sol.Estado = solicitud.EstadoEntregada
	w.sol.CostoFinal = costoFinal
	w.sol.TiempoReal = tiempoReal
	return true, nil
}

// ruta.Repository

func (w *memWorld) GetRuta(ctx context.Context, id int64) (*ruta.Ruta, error) {
	r, ok := w.rutas[id]
	if !ok {
		return nil, ruta.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (w *memWorld) RutaDeSolicitud(ctx context.Context, solicitudID int64) (*ruta.Ruta, error) {
	if w.sol == nil || w.sol.ID != solicitudID {
		return nil, ruta.ErrSolicitudNotFound
	}
	if w.sol.RutaID == nil {
		return nil, ruta.ErrNotFound
	}
	return w.GetRuta(ctx, *w.sol.RutaID)
}

func (w *memWorld) CreateConTramos(ctx context.Context, r *ruta.Ruta, tramos []ruta.Tramo, solicitudID int64) error {
	if w.sol == nil || w.sol.ID != solicitudID {
		return ruta.ErrSolicitudNotFound
	}
	if w.sol.Estado != solicitud.EstadoBorrador {
		return ruta.ErrSolicitudNoProgramable
	}
	shellID := w.sol.RutaID

	r.ID = w.id()
	w.rutas[r.ID] = r
	for i := range tramos {
		tramos[i].ID = w.id()
		tramos[i].RutaID = r.ID
		leg := tramos[i]
		w.legs[leg.ID] = &leg
	}
	rutaID := r.ID
	w.sol.RutaID = &rutaID
	w.sol.Estado = solicitud.EstadoProgramada
	if shellID != nil {
		delete(w.rutas, *shellID)
	}
	return nil
}

func (w *memWorld) GetTramo(ctx context.Context, id int64) (*ruta.Tramo, error) {
	t, ok := w.legs[id]
	if !ok {
		return nil, ruta.ErrTramoNotFound
	}
	cp := *t
	return &cp, nil
}

func (w *memWorld) ListTramos(ctx context.Context) ([]ruta.Tramo, error) {
	var out []ruta.Tramo
	for _, t := range w.legs {
		out = append(out, *t)
	}
	return out, nil
}

func (w *memWorld) ListTramosByRuta(ctx context.Context, rutaID int64) ([]ruta.Tramo, error) {
	var out []ruta.Tramo
	for _, t := range w.legs {
		if t.RutaID == rutaID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (w *memWorld) ListTramosAsignados(ctx context.Context, camionID int64) ([]ruta.Tramo, error) {
	var out []ruta.Tramo
	for _, t := range w.legs {
		if t.CamionID != nil && *t.CamionID == camionID && t.Estado != ruta.TramoFinalizado {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (w *memWorld) AsignarCamion(ctx context.Context, tramoID, camionID int64) (bool, error) {
	t := w.legs[tramoID]
	if t == nil || t.Estado != ruta.TramoPendiente || t.CamionID != nil {
		return false, nil
	}
	t.CamionID = &camionID
	t.Estado = ruta.TramoAsignado
	return true, nil
}

func (w *memWorld) MarcarIniciado(ctx context.Context, tramoID int64) (bool, error) {
	t := w.legs[tramoID]
	if t == nil || t.Estado != ruta.TramoAsignado {
		return false, nil
	}
	now := time.Now()
	t.Estado = ruta.TramoIniciado
	t.FechaRealInicio = &now
	return true, nil
}

func (w *memWorld) MarcarFinalizado(ctx context.Context, tramoID int64, costoReal float64) (bool, error) {
	t := w.legs[tramoID]
	if t == nil || t.Estado != ruta.TramoIniciado {
		return false, nil
	}
	now := time.Now()
	t.Estado = ruta.TramoFinalizado
	t.FechaRealFin = &now
	t.CostoReal = costoReal
	return true, nil
}

// tramo.ContenedorWriter

func (w *memWorld) GetContenedor(ctx context.Context, id int64) (*contenedor.Contenedor, error) {
	if w.cont == nil || w.cont.ID != id {
		return nil, contenedor.ErrNotFound
	}
	cp := *w.cont
	return &cp, nil
}

func (w *memWorld) UpdateEstadoContenedor(ctx context.Context, id int64, estado contenedor.Estado) error {
	if w.cont == nil || w.cont.ID != id {
		return contenedor.ErrNotFound
	}
	w.cont.Estado = estado
	return nil
}

// contWriter adapts memWorld to the container port without clashing with the
// solicitud-side Get/UpdateEstado method names.
type contWriter struct{ w *memWorld }

func (c contWriter) Get(ctx context.Context, id int64) (*contenedor.Contenedor, error) {
	return c.w.GetContenedor(ctx, id)
}

func (c contWriter) UpdateEstado(ctx context.Context, id int64, estado contenedor.Estado) error {
	return c.w.UpdateEstadoContenedor(ctx, id, estado)
}

type noClientes struct{}

func (noClientes) Get(ctx context.Context, id int64) (*cliente.Cliente, error) {
	return nil, cliente.ErrNotFound
}

type noContenedores struct{}

func (noContenedores) Get(ctx context.Context, id int64) (*contenedor.Contenedor, error) {
	return nil, contenedor.ErrNotFound
}

type fixedDistance struct{ dist types.Distancia }

func (o fixedDistance) GetDistance(ctx context.Context, origen, destino types.Coordenada) (types.Distancia, error) {
	return o.dist, nil
}

func TestDeliveryLifecycle(t *testing.T) {
	ctx := context.Background()
	w := newMemWorld()

	directory := &fakeDirectory{
		tarifa: &flota.Tarifa{
			CargoGestionPorTramo:   100,
			PrecioLitroCombustible: 50,
			CostoEstadiaDiaria:     20,
			Activa:                 true,
		},
		camiones: map[int64]*flota.Camion{
			1: {ID: 1, Dominio: "AB123CD", CapacidadPeso: 1000, CapacidadVolumen: 5,
				CostoPorKm: 10, ConsumoCombustiblePorKm: 0.3, Disponible: true},
		},
	}
	refs := &fakeRefs{}

	planner := ruta.NewPlanner(w, fixedDistance{dist: types.Distancia{Metros: 50000, Segundos: 18000}}, zap.NewNop())
	solicitudes := solicitud.NewService(w, noClientes{}, noContenedores{}, planner, zap.NewNop())
	tramos := NewService(w, w, contWriter{w: w}, directory, refs, zap.NewNop())

	// A fresh request with a new client and container starts in BORRADOR.
	sol, err := solicitudes.Create(ctx, solicitud.CreateCommand{
		NuevoCliente:    &cliente.Cliente{Nombre: "Acme", Email: "acme@example.com"},
		NuevoContenedor: &contenedor.Contenedor{Numero: "C1", Tipo: "DRY", Peso: 500, Volumen: 3},
		Origen:          "Cordoba Capital",
		Destino:         "Buenos Aires",
		OrigenCoord:     types.Coordenada{Latitud: -31.4, Longitud: -64.2},
		DestinoCoord:    types.Coordenada{Latitud: -34.6, Longitud: -58.4},
	})
	require.NoError(t, err)
	assert.Equal(t, solicitud.EstadoBorrador, sol.Estado)
	assert.Equal(t, contenedor.EstadoEnOrigen, w.cont.Estado)

	// Committing a single direct leg schedules the request.
	r, legs, err := planner.Assign(ctx, sol.ID, []ruta.TramoSpec{{
		Orden:       1,
		Tipo:        ruta.TipoOrigenDestino,
		PuntoInicio: types.Coordenada{Latitud: -31.4, Longitud: -64.2},
		PuntoFin:    types.Coordenada{Latitud: -34.6, Longitud: -58.4},
	}})
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, "Cordoba Capital", r.Origen)
	assert.Equal(t, solicitud.EstadoProgramada, w.sol.Estado)
	assert.Equal(t, ruta.TramoPendiente, legs[0].Estado)

	// A second route for the same request is refused.
	_, _, err = planner.Assign(ctx, sol.ID, []ruta.TramoSpec{{
		Orden: 1, Tipo: ruta.TipoOrigenDestino,
	}})
	assert.ErrorIs(t, err, ruta.ErrSolicitudNoProgramable)

	legID := legs[0].ID
	leg, err := tramos.AssignCamion(ctx, legID, 1)
	require.NoError(t, err)
	assert.Equal(t, ruta.TramoAsignado, leg.Estado)
	assert.False(t, directory.camiones[1].Disponible)

	leg, err = tramos.Start(ctx, legID)
	require.NoError(t, err)
	assert.Equal(t, ruta.TramoIniciado, leg.Estado)
	assert.Equal(t, contenedor.EstadoEnViaje, w.cont.Estado)
	assert.Equal(t, solicitud.EstadoEnTransito, w.sol.Estado)

	leg, err = tramos.Finish(ctx, legID)
	require.NoError(t, err)
	assert.Equal(t, ruta.TramoFinalizado, leg.Estado)
	// cargo de gestion + costo por km + combustible, no warehouse stay.
	esperado := 100.0 + 10.0*50 + 0.3*50*50
	assert.InDelta(t, esperado, leg.CostoReal, 0.001)

	// Last leg: the cascade delivers container and request, cost still open.
	assert.Equal(t, contenedor.EstadoEntregado, w.cont.Estado)
	assert.Equal(t, solicitud.EstadoEntregada, w.sol.Estado)
	assert.Zero(t, w.sol.CostoFinal)
	assert.True(t, directory.camiones[1].Disponible)

	sol, err = solicitudes.Finalize(ctx, sol.ID)
	require.NoError(t, err)
	assert.Equal(t, solicitud.EstadoEntregada, sol.Estado)
	assert.InDelta(t, esperado, sol.CostoFinal, 0.001)
	assert.GreaterOrEqual(t, sol.TiempoReal, 0.0)

	// Finalize settles exactly once.
	_, err = solicitudes.Finalize(ctx, sol.ID)
	assert.ErrorIs(t, err, solicitud.ErrInvalidState)
}
