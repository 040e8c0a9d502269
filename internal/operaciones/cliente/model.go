// README: Cliente entity.
package cliente

// Cliente holds contact and billing data for a shipment customer.
type Cliente struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	CUIT      string `json:"cuit"`
}
