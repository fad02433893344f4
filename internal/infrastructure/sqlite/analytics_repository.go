package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// AnalyticsRepository implementa los rollups de lectura sobre ventas
// confirmadas. Solo SELECT: nunca muta datos.
type AnalyticsRepository struct {
	db Querier
}

// NewAnalyticsRepository crea el repositorio con la conexión dada.
func NewAnalyticsRepository(db Querier) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) GetSalesMetrics(ctx context.Context, from, to time.Time) (repository.SalesMetricsResult, error) {
	var result repository.SalesMetricsResult

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0)
		 FROM sales WHERE created_at BETWEEN ? AND ?`,
		from.UTC(), to.UTC()).Scan(&result.SaleCount, &result.TotalRevenue)
	if err != nil {
		return result, fmt.Errorf("métricas de ventas: %w", err)
	}

	// La ganancia sale de las líneas: precio cobrado menos costo al momento
	// de la venta, menos el descuento de la línea.
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM((i.price - i.cost) * i.quantity - i.discount), 0), COALESCE(SUM(i.quantity), 0)
		 FROM sale_items i
		 JOIN sales s ON s.id = i.sale_id
		 WHERE s.created_at BETWEEN ? AND ?`,
		from.UTC(), to.UTC()).Scan(&result.TotalProfit, &result.UnitsSold)
	if err != nil {
		return result, fmt.Errorf("métricas de líneas: %w", err)
	}
	return result, nil
}

func (r *AnalyticsRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.name, SUM(i.quantity), SUM(i.subtotal)
		 FROM sale_items i
		 JOIN sales s ON s.id = i.sale_id
		 JOIN products p ON p.id = i.product_id
		 WHERE s.created_at BETWEEN ? AND ?
		 GROUP BY p.id, p.name
		 ORDER BY SUM(i.subtotal) DESC
		 LIMIT ?`,
		from.UTC(), to.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("ranking de productos: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var (
			res       repository.TopProductResult
			productID int64
		)
		if err := rows.Scan(&productID, &res.Name, &res.UnitsSold, &res.Revenue); err != nil {
			return nil, fmt.Errorf("leer ranking: %w", err)
		}
		res.ProductID = domain.ProductID(productID)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ranking de productos: %w", err)
	}
	return results, nil
}

func (r *AnalyticsRepository) GetRevenueByPayment(ctx context.Context, from, to time.Time) ([]repository.PaymentRevenueResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		 FROM sales
		 WHERE created_at BETWEEN ? AND ?
		 GROUP BY payment_method
		 ORDER BY SUM(total) DESC`,
		from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("ingresos por método de pago: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentRevenueResult
	for rows.Next() {
		var res repository.PaymentRevenueResult
		if err := rows.Scan(&res.PaymentMethod, &res.SaleCount, &res.Revenue); err != nil {
			return nil, fmt.Errorf("leer ingresos por método: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ingresos por método de pago: %w", err)
	}
	return results, nil
}
