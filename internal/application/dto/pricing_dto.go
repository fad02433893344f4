package dto

import "github.com/shopspring/decimal"

// AddTierRequest alta de escalón de precio por volumen.
type AddTierRequest struct {
	ProductID   int64 `validate:"required,gt=0"`
	MinQuantity int64 `validate:"gte=2"`
	BulkPrice   decimal.Decimal
}

// UpdateTierRequest edición parcial de un escalón. Los campos nil no cambian.
type UpdateTierRequest struct {
	MinQuantity *int64
	BulkPrice   *decimal.Decimal
}

// PriceResolutionDTO resultado de resolver el mejor precio para una cantidad.
type PriceResolutionDTO struct {
	Price         decimal.Decimal
	IsBulkPrice   bool
	Savings       decimal.Decimal
	AppliedTierID *int64
	MinQuantity   *int64
}
