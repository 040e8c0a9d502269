// README: Distance Matrix adapter over the Google Maps client.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"logistica/internal/types"
)

// DistanceService computes driving distance and duration between two
// coordinates. Any API failure, empty response, or non-OK element status is
// collapsed into a single error; callers treat every failure the same way.
type DistanceService struct {
	client *maps.Client
}

func NewDistanceService(apiKey string) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client}, nil
}

func (s *DistanceService) GetDistance(ctx context.Context, origen, destino types.Coordenada) (types.Distancia, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origen.LatLng()},
		Destinations: []string{destino.LatLng()},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return types.Distancia{}, fmt.Errorf("distance matrix error: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return types.Distancia{}, fmt.Errorf("no route between %s and %s", origen.LatLng(), destino.LatLng())
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return types.Distancia{}, fmt.Errorf("distance matrix status %s for %s -> %s", element.Status, origen.LatLng(), destino.LatLng())
	}

	return types.Distancia{
		Metros:   element.Distance.Meters,
		Segundos: int(element.Duration.Seconds()),
	}, nil
}
