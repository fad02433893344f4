package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto del ranking por ingreso en el período.
type TopProductDTO struct {
	ProductID int64
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// PaymentRevenueDTO ingreso agrupado por método de pago.
type PaymentRevenueDTO struct {
	PaymentMethod string
	SaleCount     int64
	Revenue       decimal.Decimal
}

// SalesAnalyticsDTO rollup de ventas del período.
// ProfitMargin = TotalProfit / TotalRevenue × 100 (0 con ingreso cero).
type SalesAnalyticsDTO struct {
	TotalRevenue     decimal.Decimal
	TotalProfit      decimal.Decimal
	ProfitMargin     decimal.Decimal
	SaleCount        int64
	UnitsSold        int64
	TopProducts      []TopProductDTO
	RevenueByPayment []PaymentRevenueDTO
}
