// README: Camion service with validation over the store.
package camion

import (
	"context"
	"fmt"
	"strings"
)

type Repository interface {
	List(ctx context.Context) ([]Camion, error)
	ListDisponibles(ctx context.Context) ([]Camion, error)
	Get(ctx context.Context, id int64) (*Camion, error)
	Create(ctx context.Context, c *Camion) error
	Update(ctx context.Context, c *Camion) error
	SetDisponible(ctx context.Context, id int64, disponible bool) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, soloDisponibles bool) ([]Camion, error) {
	if soloDisponibles {
		return s.repo.ListDisponibles(ctx)
	}
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Camion, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c *Camion) (*Camion, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, c *Camion) (*Camion, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDisponibilidad is the availability flip the operaciones service calls
// around assignment and release.
func (s *Service) SetDisponibilidad(ctx context.Context, id int64, disponible bool) (*Camion, error) {
	if err := s.repo.SetDisponible(ctx, id, disponible); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validate(c *Camion) error {
	if strings.TrimSpace(c.Dominio) == "" {
		return fmt.Errorf("%w: dominio requerido", ErrValidation)
	}
	if c.CapacidadPeso <= 0 || c.CapacidadVolumen <= 0 {
		return fmt.Errorf("%w: capacidades deben ser positivas", ErrValidation)
	}
	if c.ConsumoCombustiblePorKm < 0 || c.CostoPorKm < 0 {
		return fmt.Errorf("%w: consumo y costo por km no pueden ser negativos", ErrValidation)
	}
	return nil
}
