package money

import "github.com/shopspring/decimal"

// Pricing rules for order totals. Shipping is waived above the free-shipping
// threshold; tax is applied to the subtotal only.
var (
	taxRate               = decimal.NewFromFloat(0.08)
	flatShippingFee       = decimal.NewFromFloat(9.99)
	freeShippingThreshold = decimal.NewFromInt(100)
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal computes quantity * unitPrice rounded to cents.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// ShippingFee is zero when the subtotal exceeds the free-shipping threshold,
// otherwise the flat fee.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero.Round(2)
	}
	return flatShippingFee
}

// Tax is 8% of the subtotal, rounded to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(taxRate))
}

// Total combines subtotal, shipping and tax, rounded to cents.
func Total(subtotal, shippingFee, tax decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Add(shippingFee).Add(tax))
}
