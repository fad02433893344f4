// Package analytics contiene los casos de uso de reportes de negocio
// (ingresos, utilidad y margen sobre datos confirmados).
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

const topProductsLimit = 5 // productos en el ranking del resumen

var hundred = decimal.NewFromInt(100)

// UseCase genera el rollup de ventas de un período.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). No accede
// directamente a las tablas de ventas; delega todo en el repositorio.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// GetSalesAnalytics calcula el rollup del período. Sin rango se consideran
// todas las ventas históricas.
//
//	totalRevenue = Σ sales.total
//	totalProfit  = Σ por línea: (price − cost) × quantity − discount
//	profitMargin = totalProfit / totalRevenue × 100 (0 con ingreso cero)
func (uc *UseCase) GetSalesAnalytics(ctx context.Context, from, to *time.Time) (*dto.SalesAnalyticsDTO, error) {
	start, end := resolveWindow(from, to)

	metrics, err := uc.analyticsRepo.GetSalesMetrics(ctx, start, end)
	if err != nil {
		return nil, err
	}
	top, err := uc.analyticsRepo.GetTopProducts(ctx, start, end, topProductsLimit)
	if err != nil {
		return nil, err
	}
	byPayment, err := uc.analyticsRepo.GetRevenueByPayment(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesAnalyticsDTO{
		TotalRevenue: metrics.TotalRevenue,
		TotalProfit:  metrics.TotalProfit,
		ProfitMargin: decimal.Zero,
		SaleCount:    metrics.SaleCount,
		UnitsSold:    metrics.UnitsSold,
	}
	if metrics.TotalRevenue.GreaterThan(decimal.Zero) {
		out.ProfitMargin = metrics.TotalProfit.Div(metrics.TotalRevenue).Mul(hundred)
	}
	for _, t := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID: int64(t.ProductID),
			Name:      t.Name,
			UnitsSold: t.UnitsSold,
			Revenue:   t.Revenue,
		})
	}
	for _, p := range byPayment {
		out.RevenueByPayment = append(out.RevenueByPayment, dto.PaymentRevenueDTO{
			PaymentMethod: p.PaymentMethod,
			SaleCount:     p.SaleCount,
			Revenue:       p.Revenue,
		})
	}
	return out, nil
}

// resolveWindow completa el rango: sin inicio, desde el epoch; sin fin, hasta ahora.
func resolveWindow(from, to *time.Time) (time.Time, time.Time) {
	start := time.Unix(0, 0).UTC()
	if from != nil && !from.IsZero() {
		start = from.UTC()
	}
	end := time.Now().UTC()
	if to != nil && !to.IsZero() {
		end = to.UTC()
	}
	return start, end
}
