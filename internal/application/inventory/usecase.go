// Package inventory implementa el ledger de movimientos de stock: registro
// transaccional, listado filtrado y costo promedio ponderado.
package inventory

import (
	"context"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	domaininv "github.com/tu-usuario/caja-pro/internal/domain/inventory"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// UseCase registra movimientos de inventario de forma transaccional
// (stock_in, stock_out, adjustment) y expone las lecturas derivadas.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	validate     *validator.Validate
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	validate *validator.Validate,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		validate:     validate,
	}
}

// RecordMovement valida, inserta el registro append-only y ajusta la cantidad
// en caché del producto en la misma transacción. Una salida que dejaría la
// cantidad negativa se rechaza con domain.ErrInsufficientStock.
func (uc *UseCase) RecordMovement(ctx context.Context, in dto.RecordMovementRequest) (domain.MovementID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := validateMovementInput(in); err != nil {
		return 0, err
	}

	productID := domain.ProductID(in.ProductID)
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}

	mov := &entity.StockMovement{
		ProductID: productID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Note:      in.Note,
		CreatedAt: time.Now().UTC(),
	}
	if in.SupplierID != nil {
		sid := domain.SupplierID(*in.SupplierID)
		mov.SupplierID = &sid
	}

	var movementID domain.MovementID
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		id, err := movRepo.Create(mov)
		if err != nil {
			return err
		}
		movementID = id

		// AdjustQuantity rechaza con ErrInsufficientStock si el delta
		// dejaría la cantidad en caché negativa.
		if err := productRepo.AdjustQuantity(productID, mov.Delta()); err != nil {
			return err
		}

		// En entradas, el costo del producto se recalcula desde el ledger
		// completo de stock_in (promedio ponderado).
		if mov.Type == entity.MovementTypeStockIn {
			ins, err := movRepo.ListStockIn(productID)
			if err != nil {
				return err
			}
			return productRepo.UpdateCost(productID, domaininv.WeightedAverageCost(ins))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return movementID, nil
}

// RegisterSaleOutInTx ejecuta la salida de stock de una línea de venta usando
// los repositorios del caller (misma transacción del coordinador de ventas).
func (uc *UseCase) RegisterSaleOutInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID domain.ProductID,
	quantity int64,
	saleID domain.SaleID,
	at time.Time,
) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: cantidad %d", domain.ErrInvalidInput, quantity)
	}
	mov := &entity.StockMovement{
		ProductID: productID,
		Type:      entity.MovementTypeStockOut,
		Quantity:  quantity,
		Note:      "venta " + saleID.String(),
		CreatedAt: at,
	}
	if _, err := movRepo.Create(mov); err != nil {
		return err
	}
	return productRepo.AdjustQuantity(productID, -quantity)
}

// ListMovements lista el ledger del más reciente al más antiguo. Lectura pura.
func (uc *UseCase) ListMovements(ctx context.Context, in dto.MovementFilterRequest) ([]dto.MovementDTO, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	filter := repository.MovementFilter{
		Type: in.Type,
		From: in.From,
		To:   in.To,
	}
	if in.ProductID != nil {
		pid := domain.ProductID(*in.ProductID)
		filter.ProductID = &pid
	}
	if in.SupplierID != nil {
		sid := domain.SupplierID(*in.SupplierID)
		filter.SupplierID = &sid
	}

	movs, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementDTO(m))
	}
	return out, nil
}

// WeightedAverageCost calcula el costo promedio ponderado de las entradas del
// producto. Sin historial de entradas devuelve cero.
func (uc *UseCase) WeightedAverageCost(ctx context.Context, productID int64) (decimal.Decimal, error) {
	pid := domain.ProductID(productID)
	product, err := uc.productRepo.GetByID(pid)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	ins, err := uc.movementRepo.ListStockIn(pid)
	if err != nil {
		return decimal.Zero, err
	}
	return domaininv.WeightedAverageCost(ins), nil
}

// validateMovementInput aplica las reglas por tipo que el validador de tags no cubre.
func validateMovementInput(in dto.RecordMovementRequest) error {
	switch in.Type {
	case entity.MovementTypeStockIn:
		if in.Quantity <= 0 {
			return fmt.Errorf("%w: stock_in requiere cantidad positiva", domain.ErrInvalidInput)
		}
		if in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: stock_in requiere costo unitario", domain.ErrInvalidInput)
		}
	case entity.MovementTypeStockOut:
		if in.Quantity <= 0 {
			return fmt.Errorf("%w: stock_out requiere cantidad positiva", domain.ErrInvalidInput)
		}
	case entity.MovementTypeAdjustment:
		if in.Quantity == 0 {
			return fmt.Errorf("%w: adjustment requiere delta distinto de cero", domain.ErrInvalidInput)
		}
	}
	return nil
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	d := dto.MovementDTO{
		ID:        int64(m.ID),
		ProductID: int64(m.ProductID),
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
	if m.SupplierID != nil {
		sid := int64(*m.SupplierID)
		d.SupplierID = &sid
	}
	return d
}
