package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id domain.CustomerID) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	// Update modifica solo datos de contacto; los agregados los muta
	// exclusivamente ApplySale desde el coordinador de ventas.
	Update(customer *entity.Customer) error
	Delete(id domain.CustomerID) error
	// ApplySale incrementa total_spent en el total de la venta y visit_count en 1.
	ApplySale(id domain.CustomerID, total decimal.Decimal) error
}
