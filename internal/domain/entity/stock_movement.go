package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovementTypeStockIn    = "stock_in"   // entrada (compra, recepción)
	MovementTypeStockOut   = "stock_out"  // salida (venta, merma)
	MovementTypeAdjustment = "adjustment" // ajuste con delta con signo
)

// StockMovement es un registro append-only del ledger de inventario.
// Nunca se modifica después de creado; las correcciones son movimientos nuevos.
// Quantity es magnitud positiva para stock_in/stock_out y delta con signo para
// adjustment. UnitCost solo está presente en entradas (stock_in).
type StockMovement struct {
	ID         domain.MovementID
	ProductID  domain.ProductID
	Type       string
	Quantity   int64
	UnitCost   *decimal.Decimal
	Note       string
	SupplierID *domain.SupplierID
	CreatedAt  time.Time
}

// Delta devuelve el efecto del movimiento sobre la cantidad en mano del producto.
func (m *StockMovement) Delta() int64 {
	switch m.Type {
	case MovementTypeStockIn:
		return m.Quantity
	case MovementTypeStockOut:
		return -m.Quantity
	default:
		return m.Quantity // adjustment: ya viene con signo
	}
}
