package repository

import (
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) (domain.SupplierID, error)
	GetByID(id domain.SupplierID) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id domain.SupplierID) error
	// CountReferences cuenta productos y movimientos que referencian al proveedor.
	CountReferences(id domain.SupplierID) (int64, error)
}
