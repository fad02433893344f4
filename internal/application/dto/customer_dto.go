package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente. ID opcional (UUID generado si falta).
type CreateCustomerRequest struct {
	ID      string `validate:"omitempty,uuid4"`
	Name    string `validate:"required"`
	Phone   string
	Email   string `validate:"omitempty,email"`
	Address string
}

// UpdateCustomerRequest edición de datos de contacto. Los agregados
// (total_spent, visit_count) no son editables desde aquí.
type UpdateCustomerRequest struct {
	Name    *string
	Phone   *string
	Email   *string `validate:"omitempty,email"`
	Address *string
}

// CustomerDTO respuesta de cliente con sus agregados de por vida.
type CustomerDTO struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	Address    string
	TotalSpent decimal.Decimal
	VisitCount int64
	CreatedAt  time.Time
}
