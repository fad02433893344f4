package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
	"github.com/tu-usuario/caja-pro/pkg/validate"
)

// Los stubs embeben la interfaz: solo se implementa lo que el camino de
// borrado toca; cualquier otro método provoca panic por receptor nil.

type stubTxRunner struct {
	tierRepo    repository.BulkPricingRepository
	productRepo repository.ProductRepository
	calls       int
}

func (r *stubTxRunner) RunPricing(ctx context.Context, fn func(
	tierRepo repository.BulkPricingRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.calls++
	return fn(r.tierRepo, r.productRepo)
}

type stubProductRepo struct {
	repository.ProductRepository
	product *entity.Product
	deleted bool
}

func (s *stubProductRepo) GetByID(id domain.ProductID) (*entity.Product, error) {
	return s.product, nil
}

func (s *stubProductRepo) Delete(id domain.ProductID) error {
	s.deleted = true
	return nil
}

type stubTierRepo struct {
	repository.BulkPricingRepository
	tiers       []*entity.BulkPricingTier
	deleted     []domain.TierID
	failOnCall  int
	deleteCalls int
}

func (s *stubTierRepo) ListByProduct(productID domain.ProductID) ([]*entity.BulkPricingTier, error) {
	return s.tiers, nil
}

func (s *stubTierRepo) Delete(id domain.TierID) error {
	s.deleteCalls++
	if s.failOnCall > 0 && s.deleteCalls == s.failOnCall {
		return errors.New("disco lleno")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubSaleRepo struct {
	repository.SaleRepository
}

func (s *stubSaleRepo) CountItemsByProduct(productID domain.ProductID) (int64, error) {
	return 0, nil
}

type stubMovementRepo struct {
	repository.StockMovementRepository
}

func (s *stubMovementRepo) CountByProduct(productID domain.ProductID) (int64, error) {
	return 0, nil
}

func newDeleteFixture(failOnTierDelete int) (*ProductUseCase, *stubTxRunner, *stubTierRepo, *stubProductRepo) {
	productRepo := &stubProductRepo{product: &entity.Product{ID: 1, Name: "p"}}
	tierRepo := &stubTierRepo{
		tiers: []*entity.BulkPricingTier{
			{ID: 10, ProductID: 1, MinQuantity: 10},
			{ID: 11, ProductID: 1, MinQuantity: 20},
		},
		failOnCall: failOnTierDelete,
	}
	runner := &stubTxRunner{tierRepo: tierRepo, productRepo: productRepo}
	uc := NewProductUseCase(runner, productRepo, &stubSaleRepo{}, &stubMovementRepo{}, tierRepo, validate.New())
	return uc, runner, tierRepo, productRepo
}

func TestDelete_EscalonesYProductoCaenEnUnaSolaTransaccion(t *testing.T) {
	uc, runner, tierRepo, productRepo := newDeleteFixture(0)

	require.NoError(t, uc.Delete(context.Background(), 1))

	// Todo el borrado pasa por el runner transaccional, una sola vez.
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, []domain.TierID{10, 11}, tierRepo.deleted)
	assert.True(t, productRepo.deleted)
}

func TestDelete_FalloAMitadDeEscalonesAbortaAntesDelProducto(t *testing.T) {
	uc, runner, tierRepo, productRepo := newDeleteFixture(2)

	err := uc.Delete(context.Background(), 1)
	require.Error(t, err)

	// El error sale del runner (que revierte la transacción): el borrado del
	// producto nunca corre y el escalón ya borrado no queda confirmado solo.
	assert.Equal(t, 1, runner.calls)
	assert.False(t, productRepo.deleted)
	assert.Len(t, tierRepo.deleted, 1)
}
