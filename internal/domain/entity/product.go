package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// Product representa un producto del catálogo.
// Quantity es la caché denormalizada del ledger de movimientos: se mantiene
// transaccionalmente en cada movimiento, nunca se recalcula en lectura.
// Cost es el costo promedio ponderado de las entradas de stock.
type Product struct {
	ID         domain.ProductID
	Name       string
	CategoryID *domain.CategoryID
	Barcode    string // opcional; único cuando está presente
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Quantity   int64
	MinStock   int64 // umbral de reposición
	SupplierID *domain.SupplierID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LowStock indica si el producto está en o bajo su umbral de reposición.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
