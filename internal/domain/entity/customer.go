package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// Customer representa un cliente del punto de venta.
// TotalSpent y VisitCount los muta únicamente el coordinador de ventas
// dentro de la misma transacción que persiste la venta.
type Customer struct {
	ID         domain.CustomerID
	Name       string
	Phone      string
	Email      string
	Address    string
	TotalSpent decimal.Decimal
	VisitCount int64
	CreatedAt  time.Time
}
