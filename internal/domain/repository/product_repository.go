package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los getters devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(product *entity.Product) (domain.ProductID, error)
	GetByID(id domain.ProductID) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCost actualiza solo el costo promedio (lo usa el motor de inventario).
	UpdateCost(id domain.ProductID, cost decimal.Decimal) error
	// AdjustQuantity suma delta a la cantidad en caché. Devuelve
	// domain.ErrInsufficientStock si el resultado quedaría negativo.
	AdjustQuantity(id domain.ProductID, delta int64) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Delete(id domain.ProductID) error
}
