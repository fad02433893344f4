package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta tal como la calculó el caller (que pudo
// consultar ResolveBestPrice). Price/Cost/Discount/Subtotal se persisten
// verbatim; la invariante subtotal = price×quantity − discount se verifica
// antes de abrir la transacción.
type SaleItemRequest struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  int64 `validate:"gt=0"`
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal
}

// CreateSaleRequest la entrada del camino de escritura atómico de ventas.
// CreatedAt acepta fechas retroactivas; nil o cero usa la hora actual.
type CreateSaleRequest struct {
	CustomerID    *string
	PaymentMethod string `validate:"required"`
	Note          string
	CreatedAt     *time.Time
	Items         []SaleItemRequest `validate:"required,min=1,dive"`
}

// SaleItemDTO línea de venta persistida.
type SaleItemDTO struct {
	ID        int64
	ProductID int64
	Quantity  int64
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal
}

// SaleDTO venta con sus líneas ordenadas.
type SaleDTO struct {
	ID            string
	CustomerID    *string
	Total         decimal.Decimal
	PaymentMethod string
	Note          string
	CreatedAt     time.Time
	Items         []SaleItemDTO
}
