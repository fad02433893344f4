// Package dto define los contratos de entrada/salida de los casos de uso.
// Las validaciones estructurales van en tags de validator; las reglas sobre
// montos decimales se verifican en el caso de uso.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. La cantidad inicia en 0 y solo se
// mueve por el ledger de movimientos.
type CreateProductRequest struct {
	Name       string `validate:"required"`
	CategoryID *int64
	Barcode    string
	Price      decimal.Decimal
	Cost       decimal.Decimal
	MinStock   int64 `validate:"gte=0"`
	SupplierID *int64
}

// UpdateProductRequest edición parcial de producto. Los campos nil no cambian.
// Cost y Quantity no son editables: los maneja el motor de inventario.
type UpdateProductRequest struct {
	Name       *string
	CategoryID *int64
	Barcode    *string
	Price      *decimal.Decimal
	MinStock   *int64
	SupplierID *int64
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name string `validate:"required"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name    string `validate:"required"`
	Phone   string
	Email   string `validate:"omitempty,email"`
	Address string
}

// ProductDTO respuesta de catálogo.
type ProductDTO struct {
	ID         int64
	Name       string
	CategoryID *int64
	Barcode    string
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Quantity   int64
	MinStock   int64
	SupplierID *int64
	LowStock   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
