// README: Camion entity of the fleet directory.
package camion

import "errors"

var (
	ErrNotFound   = errors.New("camion no encontrado")
	ErrValidation = errors.New("datos de camion invalidos")
)

// Camion is the authoritative truck record. Disponible is flipped by the
// operaciones service around leg assignment and release.
type Camion struct {
	ID                      int64   `json:"id"`
	Dominio                 string  `json:"dominio"`
	NombreTransportista     string  `json:"nombreTransportista"`
	Telefono                string  `json:"telefono"`
	CapacidadPeso           float64 `json:"capacidadPeso"`
	CapacidadVolumen        float64 `json:"capacidadVolumen"`
	ConsumoCombustiblePorKm float64 `json:"consumoCombustiblePorKm"`
	CostoPorKm              float64 `json:"costoPorKm"`
	Disponible              bool    `json:"disponible"`
}
