package solicitud

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/types"
)

type fakeRepo struct {
	solicitudes map[int64]*Solicitud
	lastGraph   *CreateGraph
	finalized   bool
	costoFinal  float64
	tiempoReal  float64
}

func newFakeRepo(sols ...*Solicitud) *fakeRepo {
	m := make(map[int64]*Solicitud)
	for _, s := range sols {
		m[s.ID] = s
	}
	return &fakeRepo{solicitudes: m}
}

func (f *fakeRepo) List(ctx context.Context) ([]Solicitud, error) {
	var out []Solicitud
	for _, s := range f.solicitudes {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*Solicitud, error) {
	s, ok := f.solicitudes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) CreateGraph(ctx context.Context, g CreateGraph) (*Solicitud, error) {
	f.lastGraph = &g
	s := &Solicitud{ID: 1, Estado: EstadoBorrador, FechaSolicitud: time.Now()}
	f.solicitudes[s.ID] = s
	return s, nil
}

func (f *fakeRepo) UpdateEstado(ctx context.Context, id int64, from, to Estado) (bool, error) {
	s, ok := f.solicitudes[id]
	if !ok || s.Estado != from {
		return false, nil
	}
	s.Estado = to
	return true, nil
}

func (f *fakeRepo) Finalizar(ctx context.Context, id int64, costoFinal, tiempoReal float64) (bool, error) {
	s, ok := f.solicitudes[id]
	if !ok {
		return false, nil
	}
	if s.Estado != EstadoEnTransito && !(s.Estado == EstadoEntregada && s.CostoFinal == 0) {
		return false, nil
	}
	s.Estado = EstadoEntregada
	s.CostoFinal = costoFinal
	s.TiempoReal = tiempoReal
	f.finalized = true
	f.costoFinal = costoFinal
	f.tiempoReal = tiempoReal
	return true, nil
}

type fakeClientes struct {
	clientes map[int64]*cliente.Cliente
}

func (f *fakeClientes) Get(ctx context.Context, id int64) (*cliente.Cliente, error) {
	c, ok := f.clientes[id]
	if !ok {
		return nil, cliente.ErrNotFound
	}
	return c, nil
}

type fakeContenedores struct {
	contenedores map[int64]*contenedor.Contenedor
}

func (f *fakeContenedores) Get(ctx context.Context, id int64) (*contenedor.Contenedor, error) {
	c, ok := f.contenedores[id]
	if !ok {
		return nil, contenedor.ErrNotFound
	}
	return c, nil
}

type fakeRutas struct {
	ruta   *ruta.Ruta
	tramos []ruta.Tramo
}

func (f *fakeRutas) GetRuta(ctx context.Context, id int64) (*ruta.Ruta, error) {
	if f.ruta == nil {
		return nil, ruta.ErrNotFound
	}
	return f.ruta, nil
}

func (f *fakeRutas) ListTramosByRuta(ctx context.Context, rutaID int64) ([]ruta.Tramo, error) {
	return f.tramos, nil
}

func newService(repo *fakeRepo, clientes *fakeClientes, contenedores *fakeContenedores, rutas *fakeRutas) *Service {
	if clientes == nil {
		clientes = &fakeClientes{clientes: map[int64]*cliente.Cliente{}}
	}
	if contenedores == nil {
		contenedores = &fakeContenedores{contenedores: map[int64]*contenedor.Contenedor{}}
	}
	if rutas == nil {
		rutas = &fakeRutas{}
	}
	return NewService(repo, clientes, contenedores, rutas, zap.NewNop())
}

func validCommand() CreateCommand {
	return CreateCommand{
		NuevoCliente:    &cliente.Cliente{Nombre: "Acme", Email: "acme@example.com"},
		NuevoContenedor: &contenedor.Contenedor{Numero: "C1", Tipo: "DRY", Peso: 500, Volumen: 3},
		Origen:          "Córdoba",
		Destino:         "Buenos Aires",
		OrigenCoord:     types.Coordenada{Latitud: -31.4, Longitud: -64.2},
		DestinoCoord:    types.Coordenada{Latitud: -34.6, Longitud: -58.4},
	}
}

func TestCreateNewClientAndContainer(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil, nil, nil)

	sol, err := svc.Create(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, EstadoBorrador, sol.Estado)
	require.NotNil(t, repo.lastGraph)
	assert.NotNil(t, repo.lastGraph.NuevoCliente)
	assert.NotNil(t, repo.lastGraph.NuevoContenedor)
	assert.Equal(t, "Córdoba", repo.lastGraph.Ruta.Origen)
}

func TestCreateRejectsClientAmbiguity(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil, nil, nil)

	id := int64(1)

	cmd := validCommand()
	cmd.ClienteID = &id // both set
	_, err := svc.Create(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrValidation)

	cmd = validCommand()
	cmd.NuevoCliente = nil // neither set
	_, err = svc.Create(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrValidation)

	cmd = validCommand()
	cmd.NuevoContenedor = nil
	cmd.ContenedorID = &id // existing container with brand new client
	_, err = svc.Create(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsForeignContainer(t *testing.T) {
	clienteID := int64(10)
	contenedorID := int64(20)
	repo := newFakeRepo()
	clientes := &fakeClientes{clientes: map[int64]*cliente.Cliente{
		clienteID: {ID: clienteID, Nombre: "Acme"},
	}}
	contenedores := &fakeContenedores{contenedores: map[int64]*contenedor.Contenedor{
		contenedorID: {ID: contenedorID, Numero: "C1", ClienteID: 99},
	}}
	svc := newService(repo, clientes, contenedores, nil)

	cmd := validCommand()
	cmd.NuevoCliente = nil
	cmd.NuevoContenedor = nil
	cmd.ClienteID = &clienteID
	cmd.ContenedorID = &contenedorID

	_, err := svc.Create(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUnknownClient(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil, nil, nil)

	id := int64(404)
	cmd := validCommand()
	cmd.NuevoCliente = nil
	cmd.ClienteID = &id

	_, err := svc.Create(context.Background(), cmd)
	assert.ErrorIs(t, err, cliente.ErrNotFound)
}

func tramoFinalizado(id int64, orden int, costo float64, horas float64) ruta.Tramo {
	inicio := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	fin := inicio.Add(time.Duration(horas * float64(time.Hour)))
	return ruta.Tramo{
		ID: id, Orden: orden, Estado: ruta.TramoFinalizado,
		CostoReal: costo, FechaRealInicio: &inicio, FechaRealFin: &fin,
	}
}

func TestFinalizeAggregatesLegCosts(t *testing.T) {
	rutaID := int64(7)
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoEnTransito, RutaID: &rutaID})
	rutas := &fakeRutas{tramos: []ruta.Tramo{
		tramoFinalizado(1, 1, 1350, 5),
		tramoFinalizado(2, 2, 650, 3),
	}}
	svc := newService(repo, nil, nil, rutas)

	sol, err := svc.Finalize(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, EstadoEntregada, sol.Estado)
	assert.InDelta(t, 2000.0, sol.CostoFinal, 0.001)
	assert.InDelta(t, 8.0, sol.TiempoReal, 0.001)
}

func TestFinalizeRejectsPendingLegs(t *testing.T) {
	rutaID := int64(7)
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoEnTransito, RutaID: &rutaID})
	rutas := &fakeRutas{tramos: []ruta.Tramo{
		tramoFinalizado(1, 1, 1350, 5),
		{ID: 2, Orden: 2, Estado: ruta.TramoIniciado},
	}}
	svc := newService(repo, nil, nil, rutas)

	_, err := svc.Finalize(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "2")
	assert.False(t, repo.finalized)
}

func TestFinalizeWithoutRoute(t *testing.T) {
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoEnTransito})
	svc := newService(repo, nil, nil, &fakeRutas{})

	_, err := svc.Finalize(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, repo.finalized)
}

func TestFinalizeWrongState(t *testing.T) {
	rutaID := int64(7)
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoBorrador, RutaID: &rutaID})
	svc := newService(repo, nil, nil, nil)

	_, err := svc.Finalize(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFinalizeTwice(t *testing.T) {
	rutaID := int64(7)
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoEnTransito, RutaID: &rutaID})
	rutas := &fakeRutas{tramos: []ruta.Tramo{tramoFinalizado(1, 1, 100, 1)}}
	svc := newService(repo, nil, nil, rutas)

	_, err := svc.Finalize(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// The cascade path flips the state without writing aggregates; Finalize must
// still settle costs afterwards.
func TestFinalizeAfterCascadeFlip(t *testing.T) {
	rutaID := int64(7)
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoEntregada, RutaID: &rutaID})
	rutas := &fakeRutas{tramos: []ruta.Tramo{tramoFinalizado(1, 1, 1350, 5)}}
	svc := newService(repo, nil, nil, rutas)

	sol, err := svc.Finalize(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 1350.0, sol.CostoFinal, 0.001)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(EstadoBorrador, EstadoProgramada))
	assert.True(t, CanTransition(EstadoProgramada, EstadoEnTransito))
	assert.True(t, CanTransition(EstadoEnTransito, EstadoEntregada))
	assert.False(t, CanTransition(EstadoBorrador, EstadoEnTransito))
	assert.False(t, CanTransition(EstadoEntregada, EstadoBorrador))
	assert.False(t, CanTransition(EstadoProgramada, EstadoBorrador))
}

func TestEstadoViewProgress(t *testing.T) {
	rutaID := int64(7)
	repo := newFakeRepo(&Solicitud{ID: 1, Estado: EstadoEnTransito, RutaID: &rutaID, ContenedorID: 20, ClienteID: 10})
	clientes := &fakeClientes{clientes: map[int64]*cliente.Cliente{
		10: {ID: 10, Nombre: "Acme"},
	}}
	contenedores := &fakeContenedores{contenedores: map[int64]*contenedor.Contenedor{
		20: {ID: 20, Numero: "C1", Estado: contenedor.EstadoEnViaje, ClienteID: 10},
	}}
	rutas := &fakeRutas{
		ruta: &ruta.Ruta{ID: rutaID, Origen: "Córdoba", Destino: "Buenos Aires"},
		tramos: []ruta.Tramo{
			tramoFinalizado(1, 1, 100, 2),
			{ID: 2, Orden: 2, Estado: ruta.TramoIniciado, Tipo: ruta.TipoDepositoDestino},
		},
	}
	svc := newService(repo, clientes, contenedores, rutas)

	view, err := svc.Estado(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, EstadoEnTransito, view.Estado)
	assert.InDelta(t, 50.0, view.Progreso, 0.001)
	require.NotNil(t, view.Contenedor)
	assert.Equal(t, "Acme", view.Contenedor.NombreCliente)
	assert.Contains(t, view.Contenedor.UbicacionActual, "tramo 2")
	assert.Len(t, view.Historial, 2)
}
