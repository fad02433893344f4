package repository

import (
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID  *domain.ProductID
	Type       *string
	SupplierID *domain.SupplierID
	From       *time.Time
	To         *time.Time
}

// StockMovementRepository define el puerto del ledger de inventario.
// El ledger es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) (domain.MovementID, error)
	// List devuelve movimientos ordenados del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// ListStockIn devuelve las entradas de un producto (insumo del costo
	// promedio ponderado), en orden de creación.
	ListStockIn(productID domain.ProductID) ([]*entity.StockMovement, error)
	CountByProduct(productID domain.ProductID) (int64, error)
}
