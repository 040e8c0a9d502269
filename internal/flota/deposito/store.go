// README: Deposito store backed by PostgreSQL.
package deposito

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

func scan(row pgx.Row) (*Deposito, error) {
	var d Deposito
	err := row.Scan(&d.ID, &d.Nombre, &d.Direccion, &d.Coordenada.Latitud, &d.Coordenada.Longitud)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) List(ctx context.Context) ([]Deposito, error) {
	rows, err := s.db.Query(ctx, `SELECT id, nombre, direccion, latitud, longitud FROM depositos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list depositos: %w", err)
	}
	defer rows.Close()

	var out []Deposito
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Deposito, error) {
	return scan(s.db.QueryRow(ctx, `SELECT id, nombre, direccion, latitud, longitud FROM depositos WHERE id = $1`, id))
}

func (s *Store) Create(ctx context.Context, d *Deposito) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO depositos (nombre, direccion, latitud, longitud)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		d.Nombre, d.Direccion, d.Coordenada.Latitud, d.Coordenada.Longitud).
		Scan(&d.ID)
}

func (s *Store) Update(ctx context.Context, d *Deposito) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE depositos SET nombre = $1, direccion = $2, latitud = $3, longitud = $4
		WHERE id = $5`,
		d.Nombre, d.Direccion, d.Coordenada.Latitud, d.Coordenada.Longitud, d.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM depositos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
