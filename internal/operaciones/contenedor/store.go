// README: Contenedor store backed by PostgreSQL.
package contenedor

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

const cols = `id, numero, tipo, peso, volumen, estado, cliente_id`

func (s *Store) List(ctx context.Context) ([]Contenedor, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cols+` FROM contenedores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list contenedores: %w", err)
	}
	defer rows.Close()

	var out []Contenedor
	for rows.Next() {
		var c Contenedor
		if err := rows.Scan(&c.ID, &c.Numero, &c.Tipo, &c.Peso, &c.Volumen, &c.Estado, &c.ClienteID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Contenedor, error) {
	var c Contenedor
	err := s.db.QueryRow(ctx, `SELECT `+cols+` FROM contenedores WHERE id = $1`, id).
		Scan(&c.ID, &c.Numero, &c.Tipo, &c.Peso, &c.Volumen, &c.Estado, &c.ClienteID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *Contenedor) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO contenedores (numero, tipo, peso, volumen, estado, cliente_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.Numero, c.Tipo, c.Peso, c.Volumen, c.Estado, c.ClienteID).
		Scan(&c.ID)
}

func (s *Store) Update(ctx context.Context, c *Contenedor) error {
	// estado is workflow-owned and only moves through UpdateEstado.
	tag, err := s.db.Exec(ctx, `
		UPDATE contenedores
		SET numero = $1, tipo = $2, peso = $3, volumen = $4, cliente_id = $5
		WHERE id = $6`,
		c.Numero, c.Tipo, c.Peso, c.Volumen, c.ClienteID, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateEstado(ctx context.Context, id int64, estado Estado) error {
	tag, err := s.db.Exec(ctx, `UPDATE contenedores SET estado = $1 WHERE id = $2`, estado, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM contenedores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPendientes returns containers attached to a solicitud that has not been
// scheduled yet.
func (s *Store) ListPendientes(ctx context.Context) ([]Pendiente, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.numero, c.tipo, c.peso, c.volumen, c.estado, c.cliente_id,
		       s.id, s.estado
		FROM contenedores c
		JOIN solicitudes s ON s.contenedor_id = c.id
		WHERE s.estado = 'BORRADOR'
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list contenedores pendientes: %w", err)
	}
	defer rows.Close()

	var out []Pendiente
	for rows.Next() {
		var p Pendiente
		if err := rows.Scan(&p.ID, &p.Numero, &p.Tipo, &p.Peso, &p.Volumen, &p.Estado, &p.ClienteID,
			&p.SolicitudID, &p.EstadoSolicitud); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
