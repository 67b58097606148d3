package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/loopstackhq/loopstack-backend/pkg/config"
)

// LineItem is one priced cart line: the effective unit price times quantity.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns the line total before any rounding.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the order summary block.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals prices the cart: tax on the subtotal, flat shipping waived
// above the free-shipping threshold. Values stay exact; callers round at
// presentation.
func ComputeTotals(items []LineItem, policy config.PricingConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}

	tax := subtotal.Mul(policy.TaxRate)
	shipping := policy.ShippingFee
	if subtotal.GreaterThan(policy.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
