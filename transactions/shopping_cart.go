package transactions

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"multisafepay-sdk/money"
)

// ShoppingCart lists the items of an order.
type ShoppingCart struct {
	Items []Item
}

// Item is a cart line. UnitPrice is in major units, excluding tax.
type Item struct {
	Name             string
	Description      string
	UnitPrice        decimal.Decimal
	Quantity         int
	MerchantItemID   string
	TaxTableSelector string
}

// Data returns the shopping_cart object.
func (c *ShoppingCart) Data() map[string]any {
	items := make([]any, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, item.data())
	}
	return map[string]any{"items": items}
}

func (i Item) data() map[string]any {
	data := map[string]any{
		"name":       i.Name,
		"unit_price": json.Number(i.UnitPrice.String()),
		"quantity":   i.Quantity,
	}
	putString(data, "description", i.Description)
	putString(data, "merchant_item_id", i.MerchantItemID)
	putString(data, "tax_table_selector", i.TaxTableSelector)
	return data
}

// Total is the cart total including tax, in minor units of currency.
func (c *ShoppingCart) Total(opts *CheckoutOptions, currency string) int64 {
	total := decimal.Zero
	for _, item := range c.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line).Add(line.Mul(opts.rate(item.TaxTableSelector)))
	}
	return total.Shift(money.Exponent(currency)).Round(0).IntPart()
}

// CheckoutOptions holds the tax tables applied to cart items.
type CheckoutOptions struct {
	DefaultRate   decimal.Decimal
	ShippingTaxed bool
	Alternate     []TaxTable
}

// TaxTable is an alternate rate items can select by name.
type TaxTable struct {
	Name string
	Rate decimal.Decimal
}

// Data returns the checkout_options object with its tax tables.
func (o *CheckoutOptions) Data() map[string]any {
	alternate := make([]any, 0, len(o.Alternate))
	for _, t := range o.Alternate {
		alternate = append(alternate, map[string]any{
			"name":  t.Name,
			"rules": []any{map[string]any{"rate": json.Number(t.Rate.String())}},
		})
	}
	tables := map[string]any{
		"default": map[string]any{
			"shipping_taxed": o.ShippingTaxed,
			"rate":           json.Number(o.DefaultRate.String()),
		},
	}
	if len(alternate) > 0 {
		tables["alternate"] = alternate
	}
	return map[string]any{"tax_tables": tables}
}

func (o *CheckoutOptions) rate(selector string) decimal.Decimal {
	if o == nil {
		return decimal.Zero
	}
	for _, t := range o.Alternate {
		if t.Name == selector {
			return t.Rate
		}
	}
	return o.DefaultRate
}
