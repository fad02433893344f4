package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
)

func lineaVenta(productID, qty int64, price, cost, discount string) dto.SaleItemRequest {
	p := decimal.RequireFromString(price)
	d := decimal.RequireFromString(discount)
	return dto.SaleItemRequest{
		ProductID: productID,
		Quantity:  qty,
		Price:     p,
		Cost:      decimal.RequireFromString(cost),
		Discount:  d,
		Subtotal:  p.Mul(decimal.NewFromInt(qty)).Sub(d),
	}
}

func TestVentas_CaminoFelizAtomico(t *testing.T) {
	env := newTestEnv(t)

	cafe := env.crearProducto(t, "Café", "18.00")
	pan := env.crearProducto(t, "Pan", "2.50")
	env.ingresarStock(t, cafe, 10, "10.00")
	env.ingresarStock(t, pan, 50, "1.00")

	customerID, err := env.customers.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	cid := customerID.String()

	saleID, err := env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:    &cid,
		PaymentMethod: "efectivo",
		Items: []dto.SaleItemRequest{
			lineaVenta(cafe, 2, "18.00", "10.00", "0"),
			lineaVenta(pan, 4, "2.50", "1.00", "0.50"),
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saleID)

	sale, err := env.sales.GetSaleByID(context.Background(), saleID.String())
	require.NoError(t, err)
	require.NotNil(t, sale)
	require.Len(t, sale.Items, 2)
	// 2×18.00 + (4×2.50 − 0.50) = 45.50
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("45.50")), "total %s", sale.Total)

	// El stock se descontó y el ledger registró la salida por cada línea.
	assert.Equal(t, int64(8), env.cantidadEnMano(t, cafe))
	assert.Equal(t, int64(46), env.cantidadEnMano(t, pan))

	// Los agregados del cliente se acumularon en la misma transacción.
	customer, err := env.customers.Get(context.Background(), cid)
	require.NoError(t, err)
	assert.True(t, customer.TotalSpent.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, int64(1), customer.VisitCount)
}

func TestVentas_StockInsuficienteRevierteTodo(t *testing.T) {
	env := newTestEnv(t)

	cafe := env.crearProducto(t, "Café", "18.00")
	pan := env.crearProducto(t, "Pan", "2.50")
	env.ingresarStock(t, cafe, 10, "10.00")
	env.ingresarStock(t, pan, 3, "1.00")

	customerID, err := env.customers.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	cid := customerID.String()

	// La segunda línea pide más pan del disponible: la venta completa aborta.
	_, err = env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:    &cid,
		PaymentMethod: "efectivo",
		Items: []dto.SaleItemRequest{
			lineaVenta(cafe, 2, "18.00", "10.00", "0"),
			lineaVenta(pan, 5, "2.50", "1.00", "0"),
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Sin rastro: ni venta, ni líneas, ni salidas en el ledger, ni stock
	// descontado, ni agregados del cliente.
	assert.Equal(t, int64(0), env.contarFilas(t, "sales"))
	assert.Equal(t, int64(0), env.contarFilas(t, "sale_items"))
	assert.Equal(t, int64(10), env.cantidadEnMano(t, cafe))
	assert.Equal(t, int64(3), env.cantidadEnMano(t, pan))

	salidas := "stock_out"
	movements, err := env.inventory.ListMovements(context.Background(), dto.MovementFilterRequest{Type: &salidas})
	require.NoError(t, err)
	assert.Empty(t, movements)

	customer, err := env.customers.Get(context.Background(), cid)
	require.NoError(t, err)
	assert.True(t, customer.TotalSpent.IsZero())
	assert.Equal(t, int64(0), customer.VisitCount)
}

func TestVentas_SubtotalInconsistenteSeRechaza(t *testing.T) {
	env := newTestEnv(t)
	cafe := env.crearProducto(t, "Café", "18.00")
	env.ingresarStock(t, cafe, 10, "10.00")

	linea := lineaVenta(cafe, 2, "18.00", "10.00", "0")
	linea.Subtotal = decimal.RequireFromString("99.99")

	_, err := env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "efectivo",
		Items:         []dto.SaleItemRequest{linea},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(0), env.contarFilas(t, "sales"))
}

func TestVentas_ClienteInexistenteSeRechazaAntesDeEscribir(t *testing.T) {
	env := newTestEnv(t)
	cafe := env.crearProducto(t, "Café", "18.00")
	env.ingresarStock(t, cafe, 10, "10.00")

	fantasma := "no-existe"
	_, err := env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:    &fantasma,
		PaymentMethod: "efectivo",
		Items:         []dto.SaleItemRequest{lineaVenta(cafe, 1, "18.00", "10.00", "0")},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), env.cantidadEnMano(t, cafe))
}

func TestVentas_VentaAnonimaNoTocaClientes(t *testing.T) {
	env := newTestEnv(t)
	cafe := env.crearProducto(t, "Café", "18.00")
	env.ingresarStock(t, cafe, 10, "10.00")

	saleID, err := env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "tarjeta",
		Items:         []dto.SaleItemRequest{lineaVenta(cafe, 1, "18.00", "10.00", "0")},
	})
	require.NoError(t, err)

	sale, err := env.sales.GetSaleByID(context.Background(), saleID.String())
	require.NoError(t, err)
	assert.Nil(t, sale.CustomerID)
}

func TestVentas_FechaRetroactivaSeConservaVerbatim(t *testing.T) {
	env := newTestEnv(t)
	cafe := env.crearProducto(t, "Café", "18.00")
	env.ingresarStock(t, cafe, 10, "10.00")

	backdate := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	saleID, err := env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "efectivo",
		CreatedAt:     &backdate,
		Items:         []dto.SaleItemRequest{lineaVenta(cafe, 1, "18.00", "10.00", "0")},
	})
	require.NoError(t, err)

	sale, err := env.sales.GetSaleByID(context.Background(), saleID.String())
	require.NoError(t, err)
	assert.True(t, sale.CreatedAt.Equal(backdate), "created_at %s", sale.CreatedAt)
}

func TestVentas_ClienteConHistorialNoSeElimina(t *testing.T) {
	env := newTestEnv(t)
	cafe := env.crearProducto(t, "Café", "18.00")
	env.ingresarStock(t, cafe, 10, "10.00")

	customerID, err := env.customers.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	cid := customerID.String()

	_, err = env.sales.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:    &cid,
		PaymentMethod: "efectivo",
		Items:         []dto.SaleItemRequest{lineaVenta(cafe, 1, "18.00", "10.00", "0")},
	})
	require.NoError(t, err)

	err = env.customers.Delete(context.Background(), cid)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
