package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// BulkPricingTier define un precio unitario rebajado a partir de una cantidad
// mínima. El escalón aplica desde MinQuantity (inclusive) hasta el MinQuantity
// del siguiente escalón del producto, o sin tope si es el más alto.
// MinQuantity es único por producto; BulkPrice siempre menor al precio de lista.
type BulkPricingTier struct {
	ID          domain.TierID
	ProductID   domain.ProductID
	MinQuantity int64
	BulkPrice   decimal.Decimal
	CreatedAt   time.Time
}
