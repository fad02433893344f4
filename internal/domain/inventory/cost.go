// Package inventory contiene servicios de dominio del ledger de inventario.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// WeightedAverageCost calcula el costo promedio ponderado sobre las entradas
// (stock_in) del historial: Σ(cantidad_i × costo_i) / Σ(cantidad_i).
// Sin entradas con costo devuelve cero (nunca divide por cero).
func WeightedAverageCost(movements []*entity.StockMovement) decimal.Decimal {
	var totalCost decimal.Decimal
	var totalQty int64
	for _, m := range movements {
		if m.Type != entity.MovementTypeStockIn || m.UnitCost == nil {
			continue
		}
		qty := decimal.NewFromInt(m.Quantity)
		totalCost = totalCost.Add(qty.Mul(*m.UnitCost))
		totalQty += m.Quantity
	}
	if totalQty == 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(totalQty))
}
