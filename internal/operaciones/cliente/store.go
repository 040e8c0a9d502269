// README: Cliente store backed by PostgreSQL.
package cliente

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

func (s *Store) List(ctx context.Context) ([]Cliente, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, nombre, email, telefono, direccion, cuit
		FROM clientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []Cliente
	for rows.Next() {
		var c Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Email, &c.Telefono, &c.Direccion, &c.CUIT); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Cliente, error) {
	var c Cliente
	err := s.db.QueryRow(ctx, `
		SELECT id, nombre, email, telefono, direccion, cuit
		FROM clientes WHERE id = $1`, id).
		Scan(&c.ID, &c.Nombre, &c.Email, &c.Telefono, &c.Direccion, &c.CUIT)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *Cliente) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO clientes (nombre, email, telefono, direccion, cuit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.Nombre, c.Email, c.Telefono, c.Direccion, c.CUIT).
		Scan(&c.ID)
}

func (s *Store) Update(ctx context.Context, c *Cliente) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE clientes
		SET nombre = $1, email = $2, telefono = $3, direccion = $4, cuit = $5
		WHERE id = $6`,
		c.Nombre, c.Email, c.Telefono, c.Direccion, c.CUIT, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
