package checkout

import (
	"github.com/shopspring/decimal"

	"shopzone.GO/config"
	"shopzone.GO/service/cart"
)

// Rates are the fixed checkout charges.
type Rates struct {
	ShippingFlat decimal.Decimal
	TaxPercent   decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{ShippingFlat: decimal.NewFromInt(15), TaxPercent: decimal.NewFromInt(8)}
}

func RatesFromConfig(cfg *config.Config) Rates {
	return Rates{
		ShippingFlat: decimal.NewFromFloat(cfg.ShippingFlatRate),
		TaxPercent:   decimal.NewFromFloat(cfg.TaxRatePercent),
	}
}

var hundred = decimal.NewFromInt(100)

// Breakdown is the order price split, kept at full precision.
type Breakdown struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute prices items: subtotal = sum(price*qty), tax = subtotal*rate/100.
func Compute(items []cart.LineItem, r Rates) Breakdown {
	subtotal := cart.Total(items)
	tax := subtotal.Mul(r.TaxPercent).Div(hundred)
	return Breakdown{
		Subtotal: subtotal,
		Shipping: r.ShippingFlat,
		Tax:      tax,
		Total:    subtotal.Add(r.ShippingFlat).Add(tax),
	}
}

// Display holds the breakdown as currency strings.
type Display struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Display rounds each amount to cents, half away from zero.
func (b Breakdown) Display() Display {
	return Display{
		Subtotal: b.Subtotal.StringFixed(2),
		Shipping: b.Shipping.StringFixed(2),
		Tax:      b.Tax.StringFixed(2),
		Total:    b.Total.StringFixed(2),
	}
}
