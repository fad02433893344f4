package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

func linea(qty int64, price, discount, subtotal string) *entity.SaleItem {
	return &entity.SaleItem{
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
		Discount: decimal.RequireFromString(discount),
		Subtotal: decimal.RequireFromString(subtotal),
	}
}

func TestCheckSubtotal_Cuadra(t *testing.T) {
	// 3 × 10.50 - 1.50 = 30.00
	assert.True(t, linea(3, "10.50", "1.50", "30.00").CheckSubtotal())
	// Sin descuento: 2 × 4.25 = 8.50
	assert.True(t, linea(2, "4.25", "0", "8.50").CheckSubtotal())
}

func TestCheckSubtotal_NoCuadra(t *testing.T) {
	assert.False(t, linea(3, "10.50", "1.50", "31.00").CheckSubtotal())
	// Descuento ignorado por el caller.
	assert.False(t, linea(2, "4.25", "0.25", "8.50").CheckSubtotal())
}
