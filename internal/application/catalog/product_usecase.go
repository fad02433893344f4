// Package catalog implementa el mantenimiento del catálogo: productos,
// categorías y proveedores.
package catalog

import (
	"context"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// TxRunner abre una transacción con los repositorios de escalones y
// productos (mismo puerto transaccional que usa el caso de uso de precios).
type TxRunner interface {
	RunPricing(ctx context.Context, fn func(
		tierRepo repository.BulkPricingRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ProductUseCase CRUD de productos con la política de borrado del historial:
// un producto referenciado por líneas de venta o movimientos no se elimina.
type ProductUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.StockMovementRepository
	tierRepo     repository.BulkPricingRepository
	validate     *validator.Validate
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
	tierRepo repository.BulkPricingRepository,
	validate *validator.Validate,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		movementRepo: movementRepo,
		tierRepo:     tierRepo,
		validate:     validate,
	}
}

// Create da de alta un producto. La cantidad inicia en 0: todo stock entra
// por el ledger de movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (domain.ProductID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Price.LessThan(decimal.Zero) || in.Cost.LessThan(decimal.Zero) {
		return 0, fmt.Errorf("%w: precio y costo deben ser >= 0", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:      in.Name,
		Barcode:   in.Barcode,
		Price:     in.Price,
		Cost:      in.Cost,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CategoryID != nil {
		cid := domain.CategoryID(*in.CategoryID)
		product.CategoryID = &cid
	}
	if in.SupplierID != nil {
		sid := domain.SupplierID(*in.SupplierID)
		product.SupplierID = &sid
	}
	return uc.productRepo.Create(product)
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*dto.ProductDTO, error) {
	product, err := uc.productRepo.GetByID(domain.ProductID(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	out := toProductDTO(product)
	return &out, nil
}

// GetByBarcode busca por código de barras (lo llama el colaborador de escaneo).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductDTO, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: código de barras vacío", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	out := toProductDTO(product)
	return &out, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]dto.ProductDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProductDTO(p))
	}
	return out, nil
}

// ListLowStock devuelve productos en o bajo su umbral de reposición
// (alimenta al colaborador de notificaciones).
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductDTO, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProductDTO(p))
	}
	return out, nil
}

// Update edita datos del producto. Cost y Quantity no se tocan aquí: los
// mantiene el motor de inventario.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) error {
	product, err := uc.productRepo.GetByID(domain.ProductID(id))
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return fmt.Errorf("%w: min_stock negativo", domain.ErrInvalidInput)
		}
		product.MinStock = *in.MinStock
	}
	if in.CategoryID != nil {
		cid := domain.CategoryID(*in.CategoryID)
		product.CategoryID = &cid
	}
	if in.SupplierID != nil {
		sid := domain.SupplierID(*in.SupplierID)
		product.SupplierID = &sid
	}
	product.UpdatedAt = time.Now().UTC()
	return uc.productRepo.Update(product)
}

// Delete elimina un producto sin historial. Con líneas de venta o movimientos
// registrados se rechaza: el historial contable debe conservarse (el caller
// puede archivar el producto en su lugar). Los escalones de precio sí se
// eliminan junto con el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	pid := domain.ProductID(id)
	product, err := uc.productRepo.GetByID(pid)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	itemCount, err := uc.saleRepo.CountItemsByProduct(pid)
	if err != nil {
		return err
	}
	if itemCount > 0 {
		return fmt.Errorf("%w: el producto tiene %d líneas de venta", domain.ErrConflict, itemCount)
	}
	movCount, err := uc.movementRepo.CountByProduct(pid)
	if err != nil {
		return err
	}
	if movCount > 0 {
		return fmt.Errorf("%w: el producto tiene %d movimientos de stock", domain.ErrConflict, movCount)
	}

	// Escalones y producto caen en una sola transacción: ningún lector ve
	// un producto con escalones a medio borrar.
	return uc.txRunner.RunPricing(ctx, func(
		tierRepo repository.BulkPricingRepository,
		productRepo repository.ProductRepository,
	) error {
		tiers, err := tierRepo.ListByProduct(pid)
		if err != nil {
			return err
		}
		for _, t := range tiers {
			if err := tierRepo.Delete(t.ID); err != nil {
				return err
			}
		}
		return productRepo.Delete(pid)
	})
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	d := dto.ProductDTO{
		ID:        int64(p.ID),
		Name:      p.Name,
		Barcode:   p.Barcode,
		Price:     p.Price,
		Cost:      p.Cost,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		LowStock:  p.LowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CategoryID != nil {
		cid := int64(*p.CategoryID)
		d.CategoryID = &cid
	}
	if p.SupplierID != nil {
		sid := int64(*p.SupplierID)
		d.SupplierID = &sid
	}
	return d
}
