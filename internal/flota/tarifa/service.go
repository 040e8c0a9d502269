// README: Tarifa service; validation plus activation.
package tarifa

import (
	"context"
	"fmt"
)

type Repository interface {
	List(ctx context.Context) ([]Tarifa, error)
	Get(ctx context.Context, id int64) (*Tarifa, error)
	Activa(ctx context.Context) (*Tarifa, error)
	Create(ctx context.Context, t *Tarifa) error
	Activar(ctx context.Context, id int64) (*Tarifa, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Tarifa, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Tarifa, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Activa(ctx context.Context) (*Tarifa, error) {
	return s.repo.Activa(ctx)
}

// Create stores a new tariff in inactive state; it only starts pricing legs
// after an explicit activation.
func (s *Service) Create(ctx context.Context, t *Tarifa) (*Tarifa, error) {
	if t.CostoKmBase < 0 || t.PrecioLitroCombustible < 0 ||
		t.CargoGestionPorTramo < 0 || t.CostoEstadiaDiaria < 0 {
		return nil, fmt.Errorf("%w: los componentes de costo no pueden ser negativos", ErrValidation)
	}
	if t.VigenciaDesde != nil && t.VigenciaHasta != nil && t.VigenciaHasta.Before(*t.VigenciaDesde) {
		return nil, fmt.Errorf("%w: vigencia invertida", ErrValidation)
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Activar(ctx context.Context, id int64) (*Tarifa, error) {
	return s.repo.Activar(ctx, id)
}
