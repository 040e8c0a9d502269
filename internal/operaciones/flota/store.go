// README: CamionReference store backed by PostgreSQL.
package flota

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

func (s *Store) List(ctx context.Context) ([]CamionReference, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, dominio, capacidad_peso, capacidad_volumen, disponible
		FROM camiones_ref ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list camiones_ref: %w", err)
	}
	defer rows.Close()

	var out []CamionReference
	for rows.Next() {
		var c CamionReference
		if err := rows.Scan(&c.ID, &c.Dominio, &c.CapacidadPeso, &c.CapacidadVolumen, &c.Disponible); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*CamionReference, error) {
	var c CamionReference
	err := s.db.QueryRow(ctx, `
		SELECT id, dominio, capacidad_peso, capacidad_volumen, disponible
		FROM camiones_ref WHERE id = $1`, id).
		Scan(&c.ID, &c.Dominio, &c.CapacidadPeso, &c.CapacidadVolumen, &c.Disponible)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert synchronizes one projection row from the flota service.
func (s *Store) Upsert(ctx context.Context, c *CamionReference) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO camiones_ref (id, dominio, capacidad_peso, capacidad_volumen, disponible)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET dominio = EXCLUDED.dominio,
		    capacidad_peso = EXCLUDED.capacidad_peso,
		    capacidad_volumen = EXCLUDED.capacidad_volumen,
		    disponible = EXCLUDED.disponible`,
		c.ID, c.Dominio, c.CapacidadPeso, c.CapacidadVolumen, c.Disponible)
	return err
}

func (s *Store) SetDisponible(ctx context.Context, id int64, disponible bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE camiones_ref SET disponible = $1 WHERE id = $2`, disponible, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
