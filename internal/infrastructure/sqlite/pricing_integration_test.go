package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
)

func TestPrecios_EscalonesPersistidosResuelvenMejorPrecio(t *testing.T) {
	env := newTestEnv(t)
	productID := env.crearProducto(t, "Gaseosa", "10.00")

	_, err := env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 10,
		BulkPrice:   decimal.RequireFromString("8.50"),
	})
	require.NoError(t, err)
	_, err = env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 20,
		BulkPrice:   decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)

	res, err := env.pricing.ResolveBestPrice(context.Background(), productID, 5)
	require.NoError(t, err)
	assert.False(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("10.00")))

	res, err = env.pricing.ResolveBestPrice(context.Background(), productID, 15)
	require.NoError(t, err)
	assert.True(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("8.50")))
	assert.True(t, res.Savings.Equal(decimal.RequireFromString("22.50")), "ahorro %s", res.Savings)

	res, err = env.pricing.ResolveBestPrice(context.Background(), productID, 25)
	require.NoError(t, err)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("7.50")))
	assert.True(t, res.Savings.Equal(decimal.RequireFromString("62.50")))
}

func TestPrecios_MinQuantityDuplicadoSeRechaza(t *testing.T) {
	env := newTestEnv(t)
	productID := env.crearProducto(t, "p", "10.00")

	_, err := env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 10,
		BulkPrice:   decimal.RequireFromString("8.00"),
	})
	require.NoError(t, err)

	_, err = env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 10,
		BulkPrice:   decimal.RequireFromString("7.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrecios_BulkPriceMayorAlPrecioDeListaSeRechaza(t *testing.T) {
	env := newTestEnv(t)
	productID := env.crearProducto(t, "p", "10.00")

	_, err := env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 10,
		BulkPrice:   decimal.RequireFromString("12.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrecios_UpdateTierReValidaContraLosDemas(t *testing.T) {
	env := newTestEnv(t)
	productID := env.crearProducto(t, "p", "10.00")

	tierA, err := env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 10,
		BulkPrice:   decimal.RequireFromString("8.00"),
	})
	require.NoError(t, err)
	_, err = env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 20,
		BulkPrice:   decimal.RequireFromString("7.00"),
	})
	require.NoError(t, err)

	// Chocar con el min_quantity del otro escalón se rechaza.
	colision := int64(20)
	err = env.pricing.UpdateTier(context.Background(), int64(tierA), dto.UpdateTierRequest{
		MinQuantity: &colision,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cambiar solo el precio del propio escalón es válido.
	nuevoPrecio := decimal.RequireFromString("8.25")
	err = env.pricing.UpdateTier(context.Background(), int64(tierA), dto.UpdateTierRequest{
		BulkPrice: &nuevoPrecio,
	})
	require.NoError(t, err)

	tiers, err := env.pricing.ListTiers(context.Background(), productID)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.True(t, tiers[0].BulkPrice.Equal(nuevoPrecio))
}

func TestPrecios_DeleteTierRestauraPrecioDeLista(t *testing.T) {
	env := newTestEnv(t)
	productID := env.crearProducto(t, "p", "10.00")

	tierID, err := env.pricing.AddTier(context.Background(), dto.AddTierRequest{
		ProductID:   productID,
		MinQuantity: 10,
		BulkPrice:   decimal.RequireFromString("8.00"),
	})
	require.NoError(t, err)

	require.NoError(t, env.pricing.DeleteTier(context.Background(), int64(tierID)))

	res, err := env.pricing.ResolveBestPrice(context.Background(), productID, 50)
	require.NoError(t, err)
	assert.False(t, res.IsBulkPrice)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("10.00")))
}
