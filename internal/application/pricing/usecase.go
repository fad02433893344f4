// Package pricing implementa el mantenimiento de escalones de precio por
// volumen y la resolución del mejor precio para una cantidad.
package pricing

import (
	"context"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	domainpricing "github.com/tu-usuario/caja-pro/internal/domain/pricing"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// TxRunner abre una transacción con los repositorios de escalones y productos,
// para que la secuencia validar-luego-escribir no vea estados intermedios.
type TxRunner interface {
	RunPricing(ctx context.Context, fn func(
		tierRepo repository.BulkPricingRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// UseCase mantiene los escalones (lectura intensiva, escritura ocasional).
type UseCase struct {
	txRunner    TxRunner
	tierRepo    repository.BulkPricingRepository
	productRepo repository.ProductRepository
	validate    *validator.Validate
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	tierRepo repository.BulkPricingRepository,
	productRepo repository.ProductRepository,
	validate *validator.Validate,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		tierRepo:    tierRepo,
		productRepo: productRepo,
		validate:    validate,
	}
}

// AddTier valida contra el precio de lista y los escalones existentes dentro
// de una transacción y persiste el escalón nuevo.
func (uc *UseCase) AddTier(ctx context.Context, in dto.AddTierRequest) (domain.TierID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	productID := domain.ProductID(in.ProductID)

	var tierID domain.TierID
	err := uc.txRunner.RunPricing(ctx, func(
		tierRepo repository.BulkPricingRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
		}
		others, err := tierRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		if err := domainpricing.ValidateTier(product.Price, in.BulkPrice, in.MinQuantity, others); err != nil {
			return err
		}
		id, err := tierRepo.Create(&entity.BulkPricingTier{
			ProductID:   productID,
			MinQuantity: in.MinQuantity,
			BulkPrice:   in.BulkPrice,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		tierID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tierID, nil
}

// UpdateTier re-valida contra los demás escalones del producto y el precio
// de lista vigente, con las mismas reglas del alta.
func (uc *UseCase) UpdateTier(ctx context.Context, tierID int64, in dto.UpdateTierRequest) error {
	if in.MinQuantity == nil && in.BulkPrice == nil {
		return fmt.Errorf("%w: nada que actualizar", domain.ErrInvalidInput)
	}
	id := domain.TierID(tierID)

	return uc.txRunner.RunPricing(ctx, func(
		tierRepo repository.BulkPricingRepository,
		productRepo repository.ProductRepository,
	) error {
		tier, err := tierRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tier == nil {
			return fmt.Errorf("%w: escalón %d", domain.ErrNotFound, tierID)
		}
		product, err := productRepo.GetByID(tier.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, tier.ProductID)
		}

		if in.MinQuantity != nil {
			tier.MinQuantity = *in.MinQuantity
		}
		if in.BulkPrice != nil {
			tier.BulkPrice = *in.BulkPrice
		}

		all, err := tierRepo.ListByProduct(tier.ProductID)
		if err != nil {
			return err
		}
		// Excluir el escalón en edición de la verificación de unicidad
		others := all[:0:0]
		for _, t := range all {
			if t.ID != tier.ID {
				others = append(others, t)
			}
		}
		if err := domainpricing.ValidateTier(product.Price, tier.BulkPrice, tier.MinQuantity, others); err != nil {
			return err
		}
		return tierRepo.Update(tier)
	})
}

// DeleteTier elimina un escalón. Sin restricciones en cascada.
func (uc *UseCase) DeleteTier(ctx context.Context, tierID int64) error {
	tier, err := uc.tierRepo.GetByID(domain.TierID(tierID))
	if err != nil {
		return err
	}
	if tier == nil {
		return fmt.Errorf("%w: escalón %d", domain.ErrNotFound, tierID)
	}
	return uc.tierRepo.Delete(tier.ID)
}

// ListTiers devuelve los escalones de un producto en orden ascendente.
func (uc *UseCase) ListTiers(ctx context.Context, productID int64) ([]*entity.BulkPricingTier, error) {
	pid := domain.ProductID(productID)
	product, err := uc.productRepo.GetByID(pid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	return uc.tierRepo.ListByProduct(pid)
}

// ResolveBestPrice resuelve el mejor precio aplicable a la cantidad pedida.
// Sin escalón aplicable devuelve el precio de lista con ahorro cero.
func (uc *UseCase) ResolveBestPrice(ctx context.Context, productID, quantity int64) (dto.PriceResolutionDTO, error) {
	if quantity <= 0 {
		return dto.PriceResolutionDTO{}, fmt.Errorf("%w: cantidad %d", domain.ErrInvalidInput, quantity)
	}
	pid := domain.ProductID(productID)
	product, err := uc.productRepo.GetByID(pid)
	if err != nil {
		return dto.PriceResolutionDTO{}, err
	}
	if product == nil {
		return dto.PriceResolutionDTO{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	tiers, err := uc.tierRepo.ListByProduct(pid)
	if err != nil {
		return dto.PriceResolutionDTO{}, err
	}

	res := domainpricing.ResolveBestPrice(product.Price, tiers, quantity)
	out := dto.PriceResolutionDTO{
		Price:       res.Price,
		IsBulkPrice: res.IsBulkPrice,
		Savings:     res.Savings,
	}
	if res.AppliedTier != nil {
		tid := int64(res.AppliedTier.ID)
		minQ := res.AppliedTier.MinQuantity
		out.AppliedTierID = &tid
		out.MinQuantity = &minQ
	}
	return out, nil
}
