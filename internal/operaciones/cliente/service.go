// README: Cliente service with basic validation over the store.
package cliente

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("cliente no encontrado")
	ErrValidation = errors.New("datos de cliente invalidos")
)

// Repository is the persistence contract the service needs.
type Repository interface {
	List(ctx context.Context) ([]Cliente, error)
	Get(ctx context.Context, id int64) (*Cliente, error)
	Create(ctx context.Context, c *Cliente) error
	Update(ctx context.Context, c *Cliente) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Cliente, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Cliente, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c *Cliente) (*Cliente, error) {
	if c.Nombre == "" {
		return nil, ErrValidation
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, c *Cliente) (*Cliente, error) {
	if c.Nombre == "" {
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
