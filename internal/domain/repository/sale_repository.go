package repository

import (
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus líneas en orden de inserción.
	GetByID(id domain.SaleID) (*entity.Sale, []*entity.SaleItem, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	// CountItemsByProduct cuenta líneas históricas que referencian al producto
	// (política de borrado de productos).
	CountItemsByProduct(productID domain.ProductID) (int64, error)
	// CountByCustomer cuenta ventas del cliente (política de borrado de clientes).
	CountByCustomer(customerID domain.CustomerID) (int64, error)
}
