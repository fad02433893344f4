package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// TxRunner abre la transacción del camino de escritura de ventas, con los
// repositorios de venta, ledger, productos y clientes atados a la misma tx.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// StockRegistrar registra la salida de stock de una línea de venta dentro de
// la transacción del coordinador. Lo implementa el caso de uso de inventario.
type StockRegistrar interface {
	RegisterSaleOutInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		productID domain.ProductID,
		quantity int64,
		saleID domain.SaleID,
		at time.Time,
	) error
}
