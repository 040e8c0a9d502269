// README: Contenedor entity and state constants.
package contenedor

type Estado string

const (
	EstadoEnOrigen   Estado = "EN_ORIGEN"
	EstadoEnViaje    Estado = "EN_VIAJE"
	EstadoEnDeposito Estado = "EN_DEPOSITO"
	EstadoEntregado  Estado = "ENTREGADO"
)

// Contenedor is the physical unit being shipped. It is created per customer
// and attached to exactly one solicitud at a time.
type Contenedor struct {
	ID        int64   `json:"id"`
	Numero    string  `json:"numero"`
	Tipo      string  `json:"tipo"`
	Peso      float64 `json:"peso"`
	Volumen   float64 `json:"volumen"`
	Estado    Estado  `json:"estado"`
	ClienteID int64   `json:"clienteId"`
}

// Pendiente is the list view of containers whose solicitud has not been
// scheduled yet.
type Pendiente struct {
	Contenedor
	SolicitudID     int64  `json:"solicitudId"`
	EstadoSolicitud string `json:"estadoSolicitud"`
}
