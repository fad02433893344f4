package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// Sale es la cabecera de una venta confirmada. Inmutable una vez persistida.
// CreatedAt conserva tal cual la fecha enviada por el caller (ventas
// retroactivas); si no viene, se usa la hora actual.
type Sale struct {
	ID            domain.SaleID
	CustomerID    *domain.CustomerID // nil = venta anónima
	Total         decimal.Decimal
	PaymentMethod string
	Note          string
	CreatedAt     time.Time
}

// SaleItem es una línea de venta, propiedad exclusiva de su Sale (se elimina
// en cascada con ella). Price es el precio cobrado (puede reflejar un escalón
// por volumen) y Cost la foto del costo al momento de la venta, desacoplada
// de cambios posteriores del producto.
type SaleItem struct {
	ID        int64
	SaleID    domain.SaleID
	ProductID domain.ProductID
	Quantity  int64
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal
}

// CheckSubtotal verifica la invariante subtotal == price*quantity - discount.
func (it *SaleItem) CheckSubtotal() bool {
	expected := it.Price.Mul(decimal.NewFromInt(it.Quantity)).Sub(it.Discount)
	return it.Subtotal.Equal(expected)
}
