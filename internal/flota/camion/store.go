// README: Camion store backed by PostgreSQL.
package camion

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

const cols = `id, dominio, nombre_transportista, telefono,
	capacidad_peso, capacidad_volumen,
	consumo_combustible_por_km, costo_por_km, disponible`

func scan(row pgx.Row) (*Camion, error) {
	var c Camion
	err := row.Scan(&c.ID, &c.Dominio, &c.NombreTransportista, &c.Telefono,
		&c.CapacidadPeso, &c.CapacidadVolumen,
		&c.ConsumoCombustiblePorKm, &c.CostoPorKm, &c.Disponible)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) List(ctx context.Context) ([]Camion, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cols+` FROM camiones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list camiones: %w", err)
	}
	defer rows.Close()

	var out []Camion
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) ListDisponibles(ctx context.Context) ([]Camion, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cols+` FROM camiones WHERE disponible ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list camiones disponibles: %w", err)
	}
	defer rows.Close()

	var out []Camion
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Camion, error) {
	return scan(s.db.QueryRow(ctx, `SELECT `+cols+` FROM camiones WHERE id = $1`, id))
}

func (s *Store) Create(ctx context.Context, c *Camion) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO camiones (dominio, nombre_transportista, telefono,
			capacidad_peso, capacidad_volumen,
			consumo_combustible_por_km, costo_por_km, disponible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		c.Dominio, c.NombreTransportista, c.Telefono,
		c.CapacidadPeso, c.CapacidadVolumen,
		c.ConsumoCombustiblePorKm, c.CostoPorKm, c.Disponible).
		Scan(&c.ID)
}

func (s *Store) Update(ctx context.Context, c *Camion) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE camiones SET dominio = $1, nombre_transportista = $2, telefono = $3,
			capacidad_peso = $4, capacidad_volumen = $5,
			consumo_combustible_por_km = $6, costo_por_km = $7, disponible = $8
		WHERE id = $9`,
		c.Dominio, c.NombreTransportista, c.Telefono,
		c.CapacidadPeso, c.CapacidadVolumen,
		c.ConsumoCombustiblePorKm, c.CostoPorKm, c.Disponible, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetDisponible(ctx context.Context, id int64, disponible bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE camiones SET disponible = $1 WHERE id = $2`, disponible, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM camiones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
