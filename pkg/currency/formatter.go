// Package currency formatea montos para mostrar (símbolo, separadores y
// redondeo por moneda). Es una dependencia de presentación: los valores
// almacenados siempre conservan su precisión decimal completa.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos en una moneda y locale fijos.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
	scale   int32
}

// New construye el formateador para un código ISO 4217 y un locale BCP 47.
// Las monedas sin decimales (ej. JPY, COP en efectivo) redondean a la unidad.
func New(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("moneda %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	scale, _ := currency.Cash.Rounding(unit)
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
		scale:   int32(scale),
	}, nil
}

// Scale devuelve los decimales de presentación de la moneda.
func (f *Formatter) Scale() int32 { return f.scale }

// Round redondea un monto a la escala de la moneda. Solo para mostrar:
// nunca se usa sobre valores que vayan a persistirse.
func (f *Formatter) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(f.scale)
}

// Format devuelve el monto con símbolo y separadores del locale.
func (f *Formatter) Format(amount decimal.Decimal) string {
	value, _ := f.Round(amount).Float64()
	symbol := f.printer.Sprintf("%v", currency.Symbol(f.unit))
	return f.printer.Sprintf("%s%v", symbol, number.Decimal(value, number.Scale(int(f.scale))))
}
