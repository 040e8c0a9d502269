// README: Contenedor service; CRUD plus the pending-containers view.
package contenedor

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("contenedor no encontrado")
	ErrValidation = errors.New("datos de contenedor invalidos")
)

type Repository interface {
	List(ctx context.Context) ([]Contenedor, error)
	Get(ctx context.Context, id int64) (*Contenedor, error)
	Create(ctx context.Context, c *Contenedor) error
	Update(ctx context.Context, c *Contenedor) error
	Delete(ctx context.Context, id int64) error
	ListPendientes(ctx context.Context) ([]Pendiente, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Contenedor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Contenedor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c *Contenedor) (*Contenedor, error) {
	if c.Numero == "" || c.Peso <= 0 || c.Volumen <= 0 || c.ClienteID == 0 {
		return nil, ErrValidation
	}
	if c.Estado == "" {
		c.Estado = EstadoEnOrigen
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, c *Contenedor) (*Contenedor, error) {
	if c.Numero == "" || c.Peso <= 0 || c.Volumen <= 0 {
		return nil, ErrValidation
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPendientes(ctx context.Context) ([]Pendiente, error) {
	return s.repo.ListPendientes(ctx)
}
