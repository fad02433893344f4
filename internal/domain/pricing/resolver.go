// Package pricing contiene la lógica pura de precios por volumen (servicio de
// dominio): validación de escalones y resolución del mejor precio aplicable.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// Resolution es el resultado de resolver el precio para una cantidad.
// Savings = (precioLista - precioEscalón) × cantidad cuando aplica un escalón.
type Resolution struct {
	Price       decimal.Decimal
	IsBulkPrice bool
	Savings     decimal.Decimal
	AppliedTier *entity.BulkPricingTier
}

// ResolveBestPrice selecciona el escalón con el MinQuantity más alto que no
// exceda la cantidad pedida. Sin escalón aplicable devuelve el precio de lista
// con Savings cero. Los empates son imposibles: MinQuantity es único por producto.
func ResolveBestPrice(regularPrice decimal.Decimal, tiers []*entity.BulkPricingTier, quantity int64) Resolution {
	var best *entity.BulkPricingTier
	for _, t := range tiers {
		if t.MinQuantity > quantity {
			continue
		}
		if best == nil || t.MinQuantity > best.MinQuantity {
			best = t
		}
	}
	if best == nil {
		return Resolution{Price: regularPrice, Savings: decimal.Zero}
	}
	savings := regularPrice.Sub(best.BulkPrice).Mul(decimal.NewFromInt(quantity))
	return Resolution{
		Price:       best.BulkPrice,
		IsBulkPrice: true,
		Savings:     savings,
		AppliedTier: best,
	}
}

// ValidateTier valida un escalón nuevo o editado contra el precio de lista y
// los demás escalones del producto. Al actualizar, others no debe incluir el
// escalón en edición.
//
// Con rangos semiabiertos [MinQuantity, siguienteMinQuantity) derivados del
// orden ascendente, dos escalones se solapan si y solo si comparten
// MinQuantity, así que la verificación de rango se reduce a unicidad.
func ValidateTier(regularPrice, bulkPrice decimal.Decimal, minQuantity int64, others []*entity.BulkPricingTier) error {
	if minQuantity < 2 {
		return domain.ErrInvalidInput
	}
	if !bulkPrice.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	// El precio por volumen debe ser más barato que el de lista
	if bulkPrice.GreaterThanOrEqual(regularPrice) {
		return domain.ErrInvalidInput
	}
	// Un MinQuantity repetido es un escalón mal formado, no una colisión de
	// borrado: se clasifica como entrada inválida.
	for _, t := range others {
		if t.MinQuantity == minQuantity {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// SortTiers ordena escalones por MinQuantity ascendente (orden de rangos efectivos).
func SortTiers(tiers []*entity.BulkPricingTier) {
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity < tiers[j].MinQuantity
	})
}
