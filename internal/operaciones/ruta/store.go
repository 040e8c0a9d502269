// README: Ruta/Tramo store backed by PostgreSQL.
package ruta

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const rutaCols = `id, origen, destino,
	latitud_origen, longitud_origen, latitud_destino, longitud_destino,
	distancia_km, tiempo_estimado_horas`

const tramoCols = `id, ruta_id, orden, tipo, estado,
	latitud_inicio, longitud_inicio, latitud_fin, longitud_fin,
	distancia_km, tiempo_estimado_horas,
	fecha_estimada_inicio, fecha_estimada_fin, fecha_real_inicio, fecha_real_fin,
	costo_real, camion_id, deposito_origen_id, deposito_destino_id`

func scanRuta(row pgx.Row) (*Ruta, error) {
	var r Ruta
	err := row.Scan(&r.ID, &r.Origen, &r.Destino,
		&r.OrigenCoord.Latitud, &r.OrigenCoord.Longitud,
		&r.DestinoCoord.Latitud, &r.DestinoCoord.Longitud,
		&r.DistanciaKm, &r.TiempoEstimadoHoras)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanTramo(row pgx.Row) (*Tramo, error) {
	var t Tramo
	err := row.Scan(&t.ID, &t.RutaID, &t.Orden, &t.Tipo, &t.Estado,
		&t.PuntoInicio.Latitud, &t.PuntoInicio.Longitud,
		&t.PuntoFin.Latitud, &t.PuntoFin.Longitud,
		&t.DistanciaKm, &t.TiempoEstimadoHoras,
		&t.FechaEstimadaInicio, &t.FechaEstimadaFin, &t.FechaRealInicio, &t.FechaRealFin,
		&t.CostoReal, &t.CamionID, &t.DepositoOrigenID, &t.DepositoDestinoID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTramoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) GetRuta(ctx context.Context, id int64) (*Ruta, error) {
	return scanRuta(s.db.QueryRow(ctx, `SELECT `+rutaCols+` FROM rutas WHERE id = $1`, id))
}

// RutaDeSolicitud resolves the route currently bound to a solicitud.
func (s *Store) RutaDeSolicitud(ctx context.Context, solicitudID int64) (*Ruta, error) {
	return scanRuta(s.db.QueryRow(ctx, `
		SELECT r.id, r.origen, r.destino,
		       r.latitud_origen, r.longitud_origen, r.latitud_destino, r.longitud_destino,
		       r.distancia_km, r.tiempo_estimado_horas
		FROM rutas r
		JOIN solicitudes s ON s.ruta_id = r.id
		WHERE s.id = $1`, solicitudID))
}

// CreateRuta persists an empty route shell at request-creation time.
func (s *Store) CreateRuta(ctx context.Context, r *Ruta) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO rutas (origen, destino,
			latitud_origen, longitud_origen, latitud_destino, longitud_destino,
			distancia_km, tiempo_estimado_horas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		r.Origen, r.Destino,
		r.OrigenCoord.Latitud, r.OrigenCoord.Longitud,
		r.DestinoCoord.Latitud, r.DestinoCoord.Longitud,
		r.DistanciaKm, r.TiempoEstimadoHoras).
		Scan(&r.ID)
}

// CreateConTramos persists the committed route, its legs, and the solicitud
// binding in one transaction.
func (s *Store) CreateConTramos(ctx context.Context, r *Ruta, tramos []Tramo, solicitudID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var estado string
	var shellID *int64
	err = tx.QueryRow(ctx, `
		SELECT estado, ruta_id FROM solicitudes WHERE id = $1 FOR UPDATE`,
		solicitudID).Scan(&estado, &shellID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSolicitudNotFound
	}
	if err != nil {
		return fmt.Errorf("lock solicitud: %w", err)
	}
	if estado != "BORRADOR" {
		return fmt.Errorf("%w: estado %s", ErrSolicitudNoProgramable, estado)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO rutas (origen, destino,
			latitud_origen, longitud_origen, latitud_destino, longitud_destino,
			distancia_km, tiempo_estimado_horas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		r.Origen, r.Destino,
		r.OrigenCoord.Latitud, r.OrigenCoord.Longitud,
		r.DestinoCoord.Latitud, r.DestinoCoord.Longitud,
		r.DistanciaKm, r.TiempoEstimadoHoras).
		Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert ruta: %w", err)
	}

	for i := range tramos {
		t := &tramos[i]
		t.RutaID = r.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO tramos (ruta_id, orden, tipo, estado,
				latitud_inicio, longitud_inicio, latitud_fin, longitud_fin,
				distancia_km, tiempo_estimado_horas,
				fecha_estimada_inicio, fecha_estimada_fin,
				deposito_origen_id, deposito_destino_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id`,
			t.RutaID, t.Orden, t.Tipo, t.Estado,
			t.PuntoInicio.Latitud, t.PuntoInicio.Longitud,
			t.PuntoFin.Latitud, t.PuntoFin.Longitud,
			t.DistanciaKm, t.TiempoEstimadoHoras,
			t.FechaEstimadaInicio, t.FechaEstimadaFin,
			t.DepositoOrigenID, t.DepositoDestinoID).
			Scan(&t.ID)
		if err != nil {
			return fmt.Errorf("insert tramo %d: %w", t.Orden, err)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE solicitudes SET ruta_id = $1, estado = 'PROGRAMADA'
		WHERE id = $2 AND estado = 'BORRADOR'`,
		r.ID, solicitudID)
	if err != nil {
		return fmt.Errorf("bind solicitud: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSolicitudNoProgramable
	}

	// The provisional route is no longer referenced once the committed one
	// is bound.
	if shellID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM rutas WHERE id = $1`, *shellID); err != nil {
			return fmt.Errorf("drop ruta provisoria: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) GetTramo(ctx context.Context, id int64) (*Tramo, error) {
	return scanTramo(s.db.QueryRow(ctx, `SELECT `+tramoCols+` FROM tramos WHERE id = $1`, id))
}

func (s *Store) ListTramos(ctx context.Context) ([]Tramo, error) {
	return s.queryTramos(ctx, `SELECT `+tramoCols+` FROM tramos ORDER BY ruta_id, orden`)
}

// ListTramosByRuta returns the legs of a route in ascending orden.
func (s *Store) ListTramosByRuta(ctx context.Context, rutaID int64) ([]Tramo, error) {
	return s.queryTramos(ctx,
		`SELECT `+tramoCols+` FROM tramos WHERE ruta_id = $1 ORDER BY orden`, rutaID)
}

// ListTramosAsignados returns the not-yet-finished legs assigned to a truck,
// the transportista work queue.
func (s *Store) ListTramosAsignados(ctx context.Context, camionID int64) ([]Tramo, error) {
	return s.queryTramos(ctx, `
		SELECT `+tramoCols+` FROM tramos
		WHERE camion_id = $1 AND estado <> 'FINALIZADO'
		ORDER BY orden`, camionID)
}

func (s *Store) queryTramos(ctx context.Context, sql string, args ...any) ([]Tramo, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query tramos: %w", err)
	}
	defer rows.Close()

	var out []Tramo
	for rows.Next() {
		t, err := scanTramo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// AsignarCamion attaches a truck to a pending, unassigned leg. Returns false
// when the guard conditions no longer hold (lost race or wrong state).
func (s *Store) AsignarCamion(ctx context.Context, tramoID, camionID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE tramos SET camion_id = $1, estado = 'ASIGNADO'
		WHERE id = $2 AND estado = 'PENDIENTE' AND camion_id IS NULL`,
		camionID, tramoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) MarcarIniciado(ctx context.Context, tramoID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE tramos SET estado = 'INICIADO', fecha_real_inicio = NOW()
		WHERE id = $1 AND estado = 'ASIGNADO'`, tramoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) MarcarFinalizado(ctx context.Context, tramoID int64, costoReal float64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE tramos SET estado = 'FINALIZADO', fecha_real_fin = NOW(), costo_real = $1
		WHERE id = $2 AND estado = 'INICIADO'`, costoReal, tramoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
