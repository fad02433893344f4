// Package engine es la raíz de composición: abre el store, garantiza el
// esquema, corre la puerta de migraciones y cablea todos los casos de uso.
// Es la única fachada que un proceso embebedor necesita.
package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tu-usuario/caja-pro/internal/application/analytics"
	"github.com/tu-usuario/caja-pro/internal/application/catalog"
	"github.com/tu-usuario/caja-pro/internal/application/customers"
	"github.com/tu-usuario/caja-pro/internal/application/inventory"
	"github.com/tu-usuario/caja-pro/internal/application/migration"
	"github.com/tu-usuario/caja-pro/internal/application/pricing"
	"github.com/tu-usuario/caja-pro/internal/application/sales"
	"github.com/tu-usuario/caja-pro/internal/infrastructure/sqlite"
	"github.com/tu-usuario/caja-pro/internal/infrastructure/status"
	"github.com/tu-usuario/caja-pro/pkg/config"
	"github.com/tu-usuario/caja-pro/pkg/currency"
	"github.com/tu-usuario/caja-pro/pkg/logger"
	"github.com/tu-usuario/caja-pro/pkg/validate"
)

// Engine expone los casos de uso del motor ya cableados sobre un store listo
// (esquema garantizado, migraciones completadas).
type Engine struct {
	Products   *catalog.ProductUseCase
	Categories *catalog.CategoryUseCase
	Suppliers  *catalog.SupplierUseCase
	Customers  *customers.UseCase
	Inventory  *inventory.UseCase
	Pricing    *pricing.UseCase
	Sales      *sales.UseCase
	Analytics  *analytics.UseCase
	Currency   *currency.Formatter

	db  *sql.DB
	log *logger.Logger
}

// Open construye el motor completo. El orden es obligatorio: esquema antes
// que migraciones, migraciones antes que cualquier caso de uso. Si la puerta
// de migración falla, el motor NO arranca.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Engine, error) {
	db, err := sqlite.Open(cfg.Store.Path, cfg.Store.BusyTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("abrir store: %w", err)
	}
	if err := sqlite.EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("garantizar esquema: %w", err)
	}

	statusStore := status.NewFileStore(cfg.Store.StatusPath)
	migrator := migration.NewUseCase(
		sqlite.NewMigrationRepository(db), statusStore, cfg.Currency.Precision, log)
	if err := migrator.Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("puerta de migración: %w", err)
	}

	formatter, err := currency.New(cfg.Currency.Code, cfg.Currency.Locale)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("formateador de moneda: %w", err)
	}

	v := validate.New()
	txRunner := sqlite.NewTxRunner(db)

	productRepo := sqlite.NewProductRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	supplierRepo := sqlite.NewSupplierRepository(db)
	tierRepo := sqlite.NewBulkPricingRepository(db)
	movementRepo := sqlite.NewStockMovementRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	analyticsRepo := sqlite.NewAnalyticsRepository(db)

	inventoryUC := inventory.NewUseCase(txRunner, productRepo, movementRepo, v)

	log.Info().
		Str("store", cfg.Store.Path).
		Str("moneda", cfg.Currency.Code).
		Msg("motor listo")

	return &Engine{
		Products:   catalog.NewProductUseCase(txRunner, productRepo, saleRepo, movementRepo, tierRepo, v),
		Categories: catalog.NewCategoryUseCase(categoryRepo, v),
		Suppliers:  catalog.NewSupplierUseCase(supplierRepo, v),
		Customers:  customers.NewUseCase(customerRepo, saleRepo, v),
		Inventory:  inventoryUC,
		Pricing:    pricing.NewUseCase(txRunner, tierRepo, productRepo, v),
		Sales:      sales.NewUseCase(txRunner, inventoryUC, saleRepo, productRepo, customerRepo, v),
		Analytics:  analytics.NewUseCase(analyticsRepo),
		Currency:   formatter,
		db:         db,
		log:        log,
	}, nil
}

// Close libera la conexión al store.
func (e *Engine) Close() error {
	return e.db.Close()
}
