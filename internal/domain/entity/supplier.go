package entity

import (
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// Supplier representa un proveedor referenciado por productos y entradas de stock.
type Supplier struct {
	ID        domain.SupplierID
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}
