package inventory

import (
	"context"

	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el ledger y la
// cantidad en caché del producto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
