package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/pricing"
)

// tiersDePrueba: escalones {10: 8.50, 20: 7.50} sobre precio de lista 10.00.
func tiersDePrueba() []*entity.BulkPricingTier {
	return []*entity.BulkPricingTier{
		{ID: 1, ProductID: 1, MinQuantity: 10, BulkPrice: decimal.RequireFromString("8.50")},
		{ID: 2, ProductID: 1, MinQuantity: 20, BulkPrice: decimal.RequireFromString("7.50")},
	}
}

func TestResolveBestPrice_CantidadBajoElPrimerEscalon(t *testing.T) {
	precio := decimal.RequireFromString("10.00")
	res := pricing.ResolveBestPrice(precio, tiersDePrueba(), 5)

	assert.False(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(precio), "debe devolver el precio de lista")
	assert.True(t, res.Savings.IsZero())
	assert.Nil(t, res.AppliedTier)
}

func TestResolveBestPrice_AplicaPrimerEscalon(t *testing.T) {
	precio := decimal.RequireFromString("10.00")
	res := pricing.ResolveBestPrice(precio, tiersDePrueba(), 15)

	require.True(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("8.50")))
	// (10.00 - 8.50) × 15 = 22.50
	assert.True(t, res.Savings.Equal(decimal.RequireFromString("22.50")), "savings = %s", res.Savings)
	require.NotNil(t, res.AppliedTier)
	assert.EqualValues(t, 10, res.AppliedTier.MinQuantity)
}

func TestResolveBestPrice_AplicaEscalonMasAlto(t *testing.T) {
	precio := decimal.RequireFromString("10.00")
	res := pricing.ResolveBestPrice(precio, tiersDePrueba(), 25)

	require.True(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("7.50")))
	// (10.00 - 7.50) × 25 = 62.50
	assert.True(t, res.Savings.Equal(decimal.RequireFromString("62.50")), "savings = %s", res.Savings)
	require.NotNil(t, res.AppliedTier)
	assert.EqualValues(t, 20, res.AppliedTier.MinQuantity)
}

func TestResolveBestPrice_LimiteInclusivo(t *testing.T) {
	precio := decimal.RequireFromString("10.00")
	res := pricing.ResolveBestPrice(precio, tiersDePrueba(), 10)

	require.True(t, res.IsBulkPrice, "MinQuantity es umbral inclusivo")
	assert.True(t, res.Price.Equal(decimal.RequireFromString("8.50")))
}

func TestResolveBestPrice_SinEscalones(t *testing.T) {
	precio := decimal.RequireFromString("3.25")
	res := pricing.ResolveBestPrice(precio, nil, 100)

	assert.False(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(precio))
	assert.True(t, res.Savings.IsZero())
}

func TestValidateTier_PrecioMayorOIgualALista(t *testing.T) {
	lista := decimal.RequireFromString("10.00")

	err := pricing.ValidateTier(lista, decimal.RequireFromString("10.00"), 5, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "igual al precio de lista debe fallar")

	err = pricing.ValidateTier(lista, decimal.RequireFromString("12.00"), 5, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mayor al precio de lista debe fallar")
}

func TestValidateTier_MinQuantityDuplicado(t *testing.T) {
	lista := decimal.RequireFromString("10.00")
	err := pricing.ValidateTier(lista, decimal.RequireFromString("9.00"), 10, tiersDePrueba())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateTier_Valido(t *testing.T) {
	lista := decimal.RequireFromString("10.00")
	err := pricing.ValidateTier(lista, decimal.RequireFromString("6.00"), 30, tiersDePrueba())
	assert.NoError(t, err)
}

func TestValidateTier_CantidadMinimaInvalida(t *testing.T) {
	lista := decimal.RequireFromString("10.00")
	err := pricing.ValidateTier(lista, decimal.RequireFromString("9.00"), 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
