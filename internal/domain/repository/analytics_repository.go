package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// SalesMetricsResult resultado crudo del rollup de ventas del período.
// Lo produce la DB; el use case lo convierte en DTO.
type SalesMetricsResult struct {
	TotalRevenue decimal.Decimal // Σ sales.total
	TotalProfit  decimal.Decimal // Σ por línea: (price - cost) × quantity - discount
	SaleCount    int64
	UnitsSold    int64
}

// TopProductResult resultado crudo del ranking de productos por ingreso.
type TopProductResult struct {
	ProductID domain.ProductID
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// PaymentRevenueResult ingreso agrupado por método de pago.
type PaymentRevenueResult struct {
	PaymentMethod string
	SaleCount     int64
	Revenue       decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para analítica.
// Las implementaciones son read-only sobre datos confirmados.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, from, to time.Time) (SalesMetricsResult, error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
	GetRevenueByPayment(ctx context.Context, from, to time.Time) ([]PaymentRevenueResult, error)
}
