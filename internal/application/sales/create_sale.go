// Package sales implementa el coordinador transaccional de ventas: el único
// camino de escritura que persiste cabecera, líneas, salidas de stock y
// agregados del cliente en una sola transacción.
package sales

import (
	"context"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// UseCase coordina el checkout: Building (carrito en el caller) → Committing →
// Committed | Aborted. Un fallo en cualquier paso revierte la transacción
// completa; el carrito del caller nunca se muta, así que reintentar es seguro.
type UseCase struct {
	txRunner     TxRunner
	stock        StockRegistrar
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	validate     *validator.Validate
}

// NewUseCase construye el coordinador.
func NewUseCase(
	txRunner TxRunner,
	stock StockRegistrar,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	validate *validator.Validate,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		stock:        stock,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		validate:     validate,
	}
}

// CreateSale persiste la venta de forma atómica y devuelve el ID generado.
//
// Fuera de la transacción: validación estructural, invariante de subtotales,
// existencia de cliente y productos (fail fast, sin gastar transacción).
// Dentro: cabecera, líneas verbatim, stock_out por línea (que también
// descuenta la cantidad en caché) y agregados del cliente. Cualquier error
// fuerza rollback: ni venta parcial, ni descuento parcial, ni cliente a medias.
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (domain.SaleID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	total := decimal.Zero
	for i := range in.Items {
		item := &in.Items[i]
		if item.Price.LessThan(decimal.Zero) || item.Cost.LessThan(decimal.Zero) || item.Discount.LessThan(decimal.Zero) {
			return "", fmt.Errorf("%w: montos negativos en línea %d", domain.ErrInvalidInput, i)
		}
		line := entity.SaleItem{
			Quantity: item.Quantity,
			Price:    item.Price,
			Discount: item.Discount,
			Subtotal: item.Subtotal,
		}
		if !line.CheckSubtotal() {
			return "", fmt.Errorf("%w: subtotal de línea %d no cuadra (%s)",
				domain.ErrInvalidInput, i, item.Subtotal)
		}
		total = total.Add(item.Subtotal)
	}

	var customerID *domain.CustomerID
	if in.CustomerID != nil && *in.CustomerID != "" {
		cid := domain.CustomerID(*in.CustomerID)
		customer, err := uc.customerRepo.GetByID(cid)
		if err != nil {
			return "", err
		}
		if customer == nil {
			return "", fmt.Errorf("%w: cliente %s", domain.ErrNotFound, cid)
		}
		customerID = &cid
	}

	// Existencia de productos fuera de la tx; el stock se verifica adentro.
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(domain.ProductID(item.ProductID))
		if err != nil {
			return "", err
		}
		if product == nil {
			return "", fmt.Errorf("%w: producto %d", domain.ErrNotFound, item.ProductID)
		}
	}

	// Fecha del caller tal cual para ventas retroactivas; nunca se recalcula.
	createdAt := time.Now().UTC()
	if in.CreatedAt != nil && !in.CreatedAt.IsZero() {
		createdAt = in.CreatedAt.UTC()
	}

	saleID := domain.SaleID(uuid.New().String())
	sale := &entity.Sale{
		ID:            saleID,
		CustomerID:    customerID,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		Note:          in.Note,
		CreatedAt:     createdAt,
	}

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			if err := saleRepo.CreateItem(&entity.SaleItem{
				SaleID:    saleID,
				ProductID: domain.ProductID(item.ProductID),
				Quantity:  item.Quantity,
				Price:     item.Price,
				Cost:      item.Cost,
				Discount:  item.Discount,
				Subtotal:  item.Subtotal,
			}); err != nil {
				return err
			}
			if err := uc.stock.RegisterSaleOutInTx(
				movRepo, productRepo,
				domain.ProductID(item.ProductID), item.Quantity,
				saleID, createdAt,
			); err != nil {
				return err
			}
		}
		if customerID != nil {
			return customerRepo.ApplySale(*customerID, total)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return saleID, nil
}

// GetSaleByID devuelve la venta con sus líneas ordenadas. Lectura pura.
func (uc *UseCase) GetSaleByID(ctx context.Context, id string) (*dto.SaleDTO, error) {
	sale, items, err := uc.saleRepo.GetByID(domain.SaleID(id))
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}

	out := &dto.SaleDTO{
		ID:            sale.ID.String(),
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Note:          sale.Note,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]dto.SaleItemDTO, 0, len(items)),
	}
	if sale.CustomerID != nil {
		cid := sale.CustomerID.String()
		out.CustomerID = &cid
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemDTO{
			ID:        it.ID,
			ProductID: int64(it.ProductID),
			Quantity:  it.Quantity,
			Price:     it.Price,
			Cost:      it.Cost,
			Discount:  it.Discount,
			Subtotal:  it.Subtotal,
		})
	}
	return out, nil
}

// ListSales lista cabeceras del período, más recientes primero.
func (uc *UseCase) ListSales(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.saleRepo.List(from, to, limit, offset)
}
