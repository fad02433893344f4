package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/application/analytics"
	"github.com/tu-usuario/caja-pro/internal/application/catalog"
	"github.com/tu-usuario/caja-pro/internal/application/customers"
	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/application/inventory"
	"github.com/tu-usuario/caja-pro/internal/application/pricing"
	"github.com/tu-usuario/caja-pro/internal/application/sales"
	"github.com/tu-usuario/caja-pro/internal/infrastructure/sqlite"
	"github.com/tu-usuario/caja-pro/pkg/validate"
)

// testEnv cablea el stack completo sobre una base temporal por test.
type testEnv struct {
	db *sql.DB

	productRepo  *sqlite.ProductRepository
	movementRepo *sqlite.StockMovementRepository
	customerRepo *sqlite.CustomerRepository
	saleRepo     *sqlite.SaleRepository
	tierRepo     *sqlite.BulkPricingRepository

	products   *catalog.ProductUseCase
	categories *catalog.CategoryUseCase
	suppliers  *catalog.SupplierUseCase
	customers  *customers.UseCase
	inventory  *inventory.UseCase
	pricing    *pricing.UseCase
	sales      *sales.UseCase
	analytics  *analytics.UseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := openTestDB(t)

	v := validate.New()
	txRunner := sqlite.NewTxRunner(db)

	productRepo := sqlite.NewProductRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	supplierRepo := sqlite.NewSupplierRepository(db)
	tierRepo := sqlite.NewBulkPricingRepository(db)
	movementRepo := sqlite.NewStockMovementRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)

	inventoryUC := inventory.NewUseCase(txRunner, productRepo, movementRepo, v)

	return &testEnv{
		db:           db,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		tierRepo:     tierRepo,
		products:     catalog.NewProductUseCase(txRunner, productRepo, saleRepo, movementRepo, tierRepo, v),
		categories:   catalog.NewCategoryUseCase(categoryRepo, v),
		suppliers:    catalog.NewSupplierUseCase(supplierRepo, v),
		customers:    customers.NewUseCase(customerRepo, saleRepo, v),
		inventory:    inventoryUC,
		pricing:      pricing.NewUseCase(txRunner, tierRepo, productRepo, v),
		sales:        sales.NewUseCase(txRunner, inventoryUC, saleRepo, productRepo, customerRepo, v),
		analytics:    analytics.NewUseCase(sqlite.NewAnalyticsRepository(db)),
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), 5000)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.EnsureSchema(db))
	return db
}

// crearProducto da de alta un producto de catálogo listo para recibir stock.
func (env *testEnv) crearProducto(t *testing.T, name string, price string) int64 {
	t.Helper()

	id, err := env.products.Create(context.Background(), dto.CreateProductRequest{
		Name:  name,
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return int64(id)
}

// ingresarStock registra una entrada de stock con costo unitario.
func (env *testEnv) ingresarStock(t *testing.T, productID, quantity int64, unitCost string) {
	t.Helper()

	cost := decimal.RequireFromString(unitCost)
	_, err := env.inventory.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ProductID: productID,
		Type:      "stock_in",
		Quantity:  quantity,
		UnitCost:  &cost,
	})
	require.NoError(t, err)
}

// cantidadEnMano lee la caché de cantidad directamente del store.
func (env *testEnv) cantidadEnMano(t *testing.T, productID int64) int64 {
	t.Helper()

	var qty int64
	err := env.db.QueryRow(`SELECT quantity FROM products WHERE id = ?`, productID).Scan(&qty)
	require.NoError(t, err)
	return qty
}

func (env *testEnv) contarFilas(t *testing.T, table string) int64 {
	t.Helper()

	var count int64
	err := env.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count)
	require.NoError(t, err)
	return count
}
