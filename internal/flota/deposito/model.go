// README: Deposito entity of the fleet directory.
package deposito

import (
	"errors"

	"logistica/internal/types"
)

var (
	ErrNotFound   = errors.New("deposito no encontrado")
	ErrValidation = errors.New("datos de deposito invalidos")
)

// Deposito is an intermediate warehouse a leg can end at.
type Deposito struct {
	ID         int64            `json:"id"`
	Nombre     string           `json:"nombre"`
	Direccion  string           `json:"direccion"`
	Coordenada types.Coordenada `json:"coordenada"`
}
