package sqlite_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

func TestProductRepository_CreateYGet(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.productRepo.Create(&entity.Product{
		Name:     "Arroz 500g",
		Barcode:  "7701234567890",
		Price:    decimal.RequireFromString("3.50"),
		Cost:     decimal.RequireFromString("2.10"),
		MinStock: 10,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	p, err := env.productRepo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Arroz 500g", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("3.50")))
	assert.True(t, p.Cost.Equal(decimal.RequireFromString("2.10")))
	assert.Equal(t, int64(0), p.Quantity)
	assert.Equal(t, int64(10), p.MinStock)

	byBarcode, err := env.productRepo.GetByBarcode("7701234567890")
	require.NoError(t, err)
	require.NotNil(t, byBarcode)
	assert.Equal(t, id, byBarcode.ID)
}

func TestProductRepository_GetInexistenteDevuelveNilNil(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.productRepo.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepository_BarcodeDuplicado(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.productRepo.Create(&entity.Product{Name: "a", Barcode: "111"})
	require.NoError(t, err)

	_, err = env.productRepo.Create(&entity.Product{Name: "b", Barcode: "111"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepository_BarcodeVacioNoColisiona(t *testing.T) {
	env := newTestEnv(t)

	// Varios productos sin código de barras: el UNIQUE no debe dispararse
	// porque la cadena vacía se guarda como NULL.
	_, err := env.productRepo.Create(&entity.Product{Name: "a"})
	require.NoError(t, err)
	_, err = env.productRepo.Create(&entity.Product{Name: "b"})
	require.NoError(t, err)
}

func TestProductRepository_AdjustQuantityNuncaNegativa(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.productRepo.Create(&entity.Product{Name: "p"})
	require.NoError(t, err)

	require.NoError(t, env.productRepo.AdjustQuantity(id, 5))
	require.NoError(t, env.productRepo.AdjustQuantity(id, -3))

	err = env.productRepo.AdjustQuantity(id, -3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El intento fallido no debe haber tocado la cantidad.
	p, err := env.productRepo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Quantity)
}

func TestProductRepository_AdjustQuantityProductoInexistente(t *testing.T) {
	env := newTestEnv(t)

	err := env.productRepo.AdjustQuantity(12345, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_ListLowStock(t *testing.T) {
	env := newTestEnv(t)

	low, err := env.productRepo.Create(&entity.Product{Name: "bajo", MinStock: 5})
	require.NoError(t, err)
	require.NoError(t, env.productRepo.AdjustQuantity(low, 3))

	ok, err := env.productRepo.Create(&entity.Product{Name: "sano", MinStock: 5})
	require.NoError(t, err)
	require.NoError(t, env.productRepo.AdjustQuantity(ok, 20))

	list, err := env.productRepo.ListLowStock()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low, list[0].ID)
}

func TestProductRepository_UpdateNoTocaCostoNiCantidad(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.productRepo.Create(&entity.Product{
		Name:  "p",
		Price: decimal.RequireFromString("10"),
		Cost:  decimal.RequireFromString("6"),
	})
	require.NoError(t, err)
	require.NoError(t, env.productRepo.AdjustQuantity(id, 7))

	p, err := env.productRepo.GetByID(id)
	require.NoError(t, err)
	p.Name = "p renombrado"
	p.Price = decimal.RequireFromString("12")
	require.NoError(t, env.productRepo.Update(p))

	updated, err := env.productRepo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "p renombrado", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12")))
	assert.True(t, updated.Cost.Equal(decimal.RequireFromString("6")))
	assert.Equal(t, int64(7), updated.Quantity)
}

func TestProductRepository_DeleteInexistente(t *testing.T) {
	env := newTestEnv(t)

	err := env.productRepo.Delete(777)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
