// README: Deposito service.
package deposito

import (
	"context"
	"fmt"
	"strings"
)

type Repository interface {
	List(ctx context.Context) ([]Deposito, error)
	Get(ctx context.Context, id int64) (*Deposito, error)
	Create(ctx context.Context, d *Deposito) error
	Update(ctx context.Context, d *Deposito) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Deposito, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Deposito, error) {
	return s.repo.Get(ctx, id)
}

func validate(d *Deposito) error {
	if strings.TrimSpace(d.Nombre) == "" {
		return fmt.Errorf("%w: nombre requerido", ErrValidation)
	}
	if d.Coordenada.Latitud < -90 || d.Coordenada.Latitud > 90 ||
		d.Coordenada.Longitud < -180 || d.Coordenada.Longitud > 180 {
		return fmt.Errorf("%w: coordenadas fuera de rango", ErrValidation)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, d *Deposito) (*Deposito, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, d *Deposito) (*Deposito, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
