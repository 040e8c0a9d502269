// README: Common value objects shared across modules.
package types

import "fmt"

// Coordenada is a WGS84 latitude/longitude pair.
type Coordenada struct {
	Latitud  float64 `json:"latitud"`
	Longitud float64 `json:"longitud"`
}

// LatLng renders the coordinate in the "lat,lng" form expected by the
// distance provider.
func (c Coordenada) LatLng() string {
	return fmt.Sprintf("%f,%f", c.Latitud, c.Longitud)
}

// Distancia is the result of a distance lookup between two coordinates.
type Distancia struct {
	Metros   int `json:"metros"`
	Segundos int `json:"segundos"`
}

// Km converts the stored meters to kilometers.
func (d Distancia) Km() float64 {
	return float64(d.Metros) / 1000.0
}

// Horas converts the stored seconds to hours.
func (d Distancia) Horas() float64 {
	return float64(d.Segundos) / 3600.0
}
