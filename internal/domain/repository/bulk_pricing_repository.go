package repository

import (
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// BulkPricingRepository define el puerto de persistencia para los escalones
// de precio por volumen.
type BulkPricingRepository interface {
	Create(tier *entity.BulkPricingTier) (domain.TierID, error)
	GetByID(id domain.TierID) (*entity.BulkPricingTier, error)
	// ListByProduct devuelve los escalones ordenados por min_quantity ascendente.
	ListByProduct(productID domain.ProductID) ([]*entity.BulkPricingTier, error)
	Update(tier *entity.BulkPricingTier) error
	Delete(id domain.TierID) error
	CountByProduct(productID domain.ProductID) (int64, error)
}
