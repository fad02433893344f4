package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/pkg/currency"
)

func TestNew_MonedaInvalida(t *testing.T) {
	_, err := currency.New("XXXX", "en")
	assert.Error(t, err)
}

func TestRound_DosDecimales(t *testing.T) {
	f, err := currency.New("USD", "en")
	require.NoError(t, err)

	assert.EqualValues(t, 2, f.Scale())
	got := f.Round(decimal.RequireFromString("10.005"))
	assert.True(t, got.Equal(decimal.RequireFromString("10.01")), "redondeo = %s", got)
}

func TestRound_MonedaSinDecimales(t *testing.T) {
	f, err := currency.New("JPY", "ja")
	require.NoError(t, err)

	assert.EqualValues(t, 0, f.Scale())
	got := f.Round(decimal.RequireFromString("1234.4"))
	assert.True(t, got.Equal(decimal.NewFromInt(1234)), "redondeo = %s", got)
}

func TestFormat_IncluyeSimboloYSeparadores(t *testing.T) {
	f, err := currency.New("USD", "en")
	require.NoError(t, err)

	out := f.Format(decimal.RequireFromString("1234.50"))
	assert.Contains(t, out, "$")
	assert.Contains(t, out, "1,234.50")
}
