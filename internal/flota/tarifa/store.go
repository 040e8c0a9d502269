// README: Tarifa store; activation swaps the unique active row in one
// transaction.
package tarifa

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

const cols = `id, costo_km_base, precio_litro_combustible,
	cargo_gestion_por_tramo, costo_estadia_diaria,
	vigencia_desde, vigencia_hasta, activa`

func scan(row pgx.Row) (*Tarifa, error) {
	var t Tarifa
	err := row.Scan(&t.ID, &t.CostoKmBase, &t.PrecioLitroCombustible,
		&t.CargoGestionPorTramo, &t.CostoEstadiaDiaria,
		&t.VigenciaDesde, &t.VigenciaHasta, &t.Activa)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) List(ctx context.Context) ([]Tarifa, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cols+` FROM tarifas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tarifas: %w", err)
	}
	defer rows.Close()

	var out []Tarifa
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Tarifa, error) {
	t, err := scan(s.db.QueryRow(ctx, `SELECT `+cols+` FROM tarifas WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// Activa returns the single active tariff; a partial unique index guarantees
// there is at most one.
func (s *Store) Activa(ctx context.Context) (*Tarifa, error) {
	t, err := scan(s.db.QueryRow(ctx, `SELECT `+cols+` FROM tarifas WHERE activa`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSinActiva
	}
	return t, err
}

func (s *Store) Create(ctx context.Context, t *Tarifa) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO tarifas (costo_km_base, precio_litro_combustible,
			cargo_gestion_por_tramo, costo_estadia_diaria,
			vigencia_desde, vigencia_hasta, activa)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE) RETURNING id`,
		t.CostoKmBase, t.PrecioLitroCombustible,
		t.CargoGestionPorTramo, t.CostoEstadiaDiaria,
		t.VigenciaDesde, t.VigenciaHasta).
		Scan(&t.ID)
}

// Activar deactivates the current active tariff and activates id, in one
// transaction so the unique index never sees two active rows.
func (s *Store) Activar(ctx context.Context, id int64) (*Tarifa, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE tarifas SET activa = FALSE WHERE activa`); err != nil {
		return nil, fmt.Errorf("deactivate current: %w", err)
	}
	tag, err := tx.Exec(ctx, `UPDATE tarifas SET activa = TRUE WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("activate %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
