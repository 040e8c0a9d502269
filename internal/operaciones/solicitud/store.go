// README: Solicitud store backed by PostgreSQL; creation runs as one
// transaction over the aggregate graph.
package solicitud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/ruta"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const cols = `id, fecha_solicitud, estado, observaciones,
	cliente_id, contenedor_id, ruta_id,
	costo_estimado, tiempo_estimado, costo_final, tiempo_real`

func scan(row pgx.Row) (*Solicitud, error) {
	var s Solicitud
	err := row.Scan(&s.ID, &s.FechaSolicitud, &s.Estado, &s.Observaciones,
		&s.ClienteID, &s.ContenedorID, &s.RutaID,
		&s.CostoEstimado, &s.TiempoEstimado, &s.CostoFinal, &s.TiempoReal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) List(ctx context.Context) ([]Solicitud, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cols+` FROM solicitudes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes: %w", err)
	}
	defer rows.Close()

	var out []Solicitud
	for rows.Next() {
		sol, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sol)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Solicitud, error) {
	return scan(s.db.QueryRow(ctx, `SELECT `+cols+` FROM solicitudes WHERE id = $1`, id))
}

// GetByRutaID resolves the solicitud that owns a route.
func (s *Store) GetByRutaID(ctx context.Context, rutaID int64) (*Solicitud, error) {
	return scan(s.db.QueryRow(ctx, `SELECT `+cols+` FROM solicitudes WHERE ruta_id = $1`, rutaID))
}

// CreateGraph is the input of the creation transaction. Exactly one of
// NuevoCliente/ClienteID and one of NuevoContenedor/ContenedorID is set;
// the service validates before calling.
type CreateGraph struct {
	NuevoCliente    *cliente.Cliente
	ClienteID       int64
	NuevoContenedor *contenedor.Contenedor
	ContenedorID    int64
	Ruta            ruta.Ruta
	Observaciones   string
}

// CreateGraph persists cliente (if new), contenedor state, route shell and
// the solicitud itself in a single transaction.
func (s *Store) CreateGraph(ctx context.Context, g CreateGraph) (*Solicitud, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	clienteID := g.ClienteID
	if g.NuevoCliente != nil {
		err = tx.QueryRow(ctx, `
			INSERT INTO clientes (nombre, email, telefono, direccion, cuit)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			g.NuevoCliente.Nombre, g.NuevoCliente.Email, g.NuevoCliente.Telefono,
			g.NuevoCliente.Direccion, g.NuevoCliente.CUIT).
			Scan(&clienteID)
		if err != nil {
			return nil, fmt.Errorf("insert cliente: %w", err)
		}
		g.NuevoCliente.ID = clienteID
	}

	contenedorID := g.ContenedorID
	if g.NuevoContenedor != nil {
		err = tx.QueryRow(ctx, `
			INSERT INTO contenedores (numero, tipo, peso, volumen, estado, cliente_id)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			g.NuevoContenedor.Numero, g.NuevoContenedor.Tipo,
			g.NuevoContenedor.Peso, g.NuevoContenedor.Volumen,
			contenedor.EstadoEnOrigen, clienteID).
			Scan(&contenedorID)
		if err != nil {
			return nil, fmt.Errorf("insert contenedor: %w", err)
		}
		g.NuevoContenedor.ID = contenedorID
	} else {
		tag, err := tx.Exec(ctx, `UPDATE contenedores SET estado = $1 WHERE id = $2`,
			contenedor.EstadoEnOrigen, contenedorID)
		if err != nil {
			return nil, fmt.Errorf("update contenedor: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrContenedorNotFound
		}
	}

	var rutaID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO rutas (origen, destino,
			latitud_origen, longitud_origen, latitud_destino, longitud_destino,
			distancia_km, tiempo_estimado_horas)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0) RETURNING id`,
		g.Ruta.Origen, g.Ruta.Destino,
		g.Ruta.OrigenCoord.Latitud, g.Ruta.OrigenCoord.Longitud,
		g.Ruta.DestinoCoord.Latitud, g.Ruta.DestinoCoord.Longitud).
		Scan(&rutaID)
	if err != nil {
		return nil, fmt.Errorf("insert ruta: %w", err)
	}

	now := time.Now()
	var sol Solicitud
	err = tx.QueryRow(ctx, `
		INSERT INTO solicitudes (fecha_solicitud, estado, observaciones,
			cliente_id, contenedor_id, ruta_id,
			costo_estimado, tiempo_estimado, costo_final, tiempo_real)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0, 0)
		RETURNING `+cols,
		now, EstadoBorrador, g.Observaciones, clienteID, contenedorID, rutaID).
		Scan(&sol.ID, &sol.FechaSolicitud, &sol.Estado, &sol.Observaciones,
			&sol.ClienteID, &sol.ContenedorID, &sol.RutaID,
			&sol.CostoEstimado, &sol.TiempoEstimado, &sol.CostoFinal, &sol.TiempoReal)
	if err != nil {
		return nil, fmt.Errorf("insert solicitud: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &sol, nil
}

// UpdateEstado flips the request state with a guard on the expected current
// state. Returns false when the guard fails.
func (s *Store) UpdateEstado(ctx context.Context, id int64, from, to Estado) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE solicitudes SET estado = $1 WHERE id = $2 AND estado = $3`,
		to, id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Finalizar writes the one-time aggregate cost and time and marks the
// request delivered. The guard admits the normal EN_TRANSITO path and the
// ENTREGADA-by-cascade path that has not aggregated yet.
func (s *Store) Finalizar(ctx context.Context, id int64, costoFinal, tiempoReal float64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE solicitudes
		SET estado = $1, costo_final = $2, tiempo_real = $3
		WHERE id = $4
		  AND (estado = $5 OR (estado = $1 AND costo_final = 0))`,
		EstadoEntregada, costoFinal, tiempoReal, id, EstadoEnTransito)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
