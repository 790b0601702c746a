package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderTotals(t *testing.T) {
	subtotal := LineTotal(2, dec("30.00"))
	require.True(t, subtotal.Equal(dec("60.00")))

	shipping := ShippingFee(subtotal)
	tax := Tax(subtotal)
	total := Total(subtotal, shipping, tax)

	assert.True(t, shipping.Equal(dec("9.99")), "shipping was %s", shipping)
	assert.True(t, tax.Equal(dec("4.80")), "tax was %s", tax)
	assert.True(t, total.Equal(dec("74.79")), "total was %s", total)
}

func TestShippingFee(t *testing.T) {
	assert.True(t, ShippingFee(dec("100.00")).Equal(dec("9.99")), "threshold is exclusive")
	assert.True(t, ShippingFee(dec("100.01")).IsZero())
	assert.True(t, ShippingFee(dec("250.00")).IsZero())
	assert.True(t, ShippingFee(dec("0")).Equal(dec("9.99")))
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "1.01", Round2(dec("1.005")).StringFixed(2))
	assert.Equal(t, "1.00", Round2(dec("1.004")).StringFixed(2))
	assert.Equal(t, "-1.01", Round2(dec("-1.005")).StringFixed(2))
}

func TestTaxRounding(t *testing.T) {
	// 19.99 * 0.08 = 1.5992 -> 1.60
	assert.Equal(t, "1.60", Tax(dec("19.99")).StringFixed(2))
	// 0.10 * 0.08 = 0.008 -> 0.01
	assert.Equal(t, "0.01", Tax(dec("0.10")).StringFixed(2))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "59.97", LineTotal(3, dec("19.99")).StringFixed(2))
	assert.Equal(t, "0.00", LineTotal(0, dec("19.99")).StringFixed(2))
}
