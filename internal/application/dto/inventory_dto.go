package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest registro manual de movimiento de inventario.
// Quantity es magnitud positiva para stock_in/stock_out y delta con signo
// (distinto de cero) para adjustment. UnitCost es obligatorio en stock_in.
type RecordMovementRequest struct {
	ProductID  int64  `validate:"required,gt=0"`
	Type       string `validate:"required,oneof=stock_in stock_out adjustment"`
	Quantity   int64
	UnitCost   *decimal.Decimal
	Note       string
	SupplierID *int64
}

// MovementFilterRequest filtros opcionales para listar movimientos.
type MovementFilterRequest struct {
	ProductID  *int64
	Type       *string `validate:"omitempty,oneof=stock_in stock_out adjustment"`
	SupplierID *int64
	From       *time.Time
	To         *time.Time
}

// MovementDTO respuesta de un movimiento del ledger.
type MovementDTO struct {
	ID         int64
	ProductID  int64
	Type       string
	Quantity   int64
	UnitCost   *decimal.Decimal
	Note       string
	SupplierID *int64
	CreatedAt  time.Time
}
