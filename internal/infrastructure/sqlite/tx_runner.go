package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tu-usuario/caja-pro/internal/application/inventory"
	"github.com/tu-usuario/caja-pro/internal/application/pricing"
	"github.com/tu-usuario/caja-pro/internal/application/sales"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// TxRunner implementa los puertos transaccionales de los casos de uso:
// abre la tx, construye repositorios atados a ella y confirma o revierte
// según el resultado de fn. Los errores de dominio de fn pasan intactos;
// los fallos de la propia transacción se marcan con ErrTransaction.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner crea el runner sobre la conexión raíz.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ pricing.TxRunner   = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
)

// Run ejecuta fn con los repositorios de inventario en una sola transacción.
func (tr *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return tr.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewStockMovementRepository(tx), NewProductRepository(tx))
	})
}

// RunPricing ejecuta fn con los repositorios de precios en una sola transacción.
func (tr *TxRunner) RunPricing(ctx context.Context, fn func(
	tierRepo repository.BulkPricingRepository,
	productRepo repository.ProductRepository,
) error) error {
	return tr.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewBulkPricingRepository(tx), NewProductRepository(tx))
	})
}

// RunSale ejecuta fn con los repositorios del camino de ventas en una sola
// transacción: cabecera, líneas, ledger, caché de cantidad y agregados del
// cliente confirman juntos o no confirma nada.
func (tr *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return tr.inTx(ctx, func(tx *sql.Tx) error {
		return fn(
			NewSaleRepository(tx),
			NewStockMovementRepository(tx),
			NewProductRepository(tx),
			NewCustomerRepository(tx),
		)
	})
}

func (tr *TxRunner) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: abrir: %v", domain.ErrTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: confirmar: %v", domain.ErrTransaction, err)
	}
	return nil
}
