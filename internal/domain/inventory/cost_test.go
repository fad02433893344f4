package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entrada(qty int64, cost string) *entity.StockMovement {
	c := dec(cost)
	return &entity.StockMovement{Type: entity.MovementTypeStockIn, Quantity: qty, UnitCost: &c}
}

func TestWeightedAverageCost_PromedioPonderado(t *testing.T) {
	// Entradas (10 @ 18.50), (20 @ 21.75), (5 @ 19.25)
	// (185 + 435 + 96.25) / 35 = 716.25 / 35 ≈ 20.464
	movs := []*entity.StockMovement{
		entrada(10, "18.50"),
		entrada(20, "21.75"),
		entrada(5, "19.25"),
	}
	got := inventory.WeightedAverageCost(movs)
	diff := got.Sub(dec("20.464")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.001")), "promedio = %s", got)
}

func TestWeightedAverageCost_SinEntradas(t *testing.T) {
	salida := &entity.StockMovement{Type: entity.MovementTypeStockOut, Quantity: 3}
	got := inventory.WeightedAverageCost([]*entity.StockMovement{salida})
	assert.True(t, got.IsZero(), "sin stock_in debe devolver cero")
}

func TestWeightedAverageCost_IgnoraSalidasYAjustes(t *testing.T) {
	movs := []*entity.StockMovement{
		entrada(10, "5.00"),
		{Type: entity.MovementTypeStockOut, Quantity: 4},
		{Type: entity.MovementTypeAdjustment, Quantity: -2},
	}
	got := inventory.WeightedAverageCost(movs)
	assert.True(t, got.Equal(dec("5.00")), "solo las entradas ponderan: %s", got)
}
