package transactions

import (
	"errors"
	"fmt"
	"strings"

	"multisafepay-sdk/api"
	"multisafepay-sdk/money"
)

// OrderType selects how the customer pays.
type OrderType string

const (
	TypeRedirect    OrderType = "redirect"
	TypeDirect      OrderType = "direct"
	TypePaymentLink OrderType = "paymentlink"
)

// OrderRequest is the payload of POST orders.
type OrderRequest struct {
	Type            OrderType
	OrderID         string
	Money           money.Money
	GatewayCode     string
	GatewayInfo     GatewayInfo
	Description     string
	PaymentOptions  *PaymentOptions
	Customer        *CustomerDetails
	Delivery        *CustomerDetails
	Plugin          *PluginDetails
	SecondChance    *SecondChance
	ShoppingCart    *ShoppingCart
	CheckoutOptions *CheckoutOptions
	Var1            string
	Var2            string
	Var3            string
	DaysActive      int

	// Extra holds fields not modelled above. Modelled fields take
	// precedence, and strict mode rejects unknown keys.
	Extra map[string]any
}

// NewRedirectOrder creates an order paid on the hosted payment page.
func NewRedirectOrder(orderID string, amount money.Money, gatewayCode string) *OrderRequest {
	return &OrderRequest{Type: TypeRedirect, OrderID: orderID, Money: amount, GatewayCode: gatewayCode}
}

// NewDirectOrder creates an order paid with the given gateway details.
func NewDirectOrder(orderID string, amount money.Money, gatewayCode string, info GatewayInfo) *OrderRequest {
	return &OrderRequest{Type: TypeDirect, OrderID: orderID, Money: amount, GatewayCode: gatewayCode, GatewayInfo: info}
}

// NewPaymentLink creates an order that only returns a payment link.
func NewPaymentLink(orderID string, amount money.Money) *OrderRequest {
	return &OrderRequest{Type: TypePaymentLink, OrderID: orderID, Money: amount}
}

func (o *OrderRequest) orderType() OrderType {
	if o.Type == "" {
		return TypeRedirect
	}
	return o.Type
}

// Data implements api.RequestBody.
func (o *OrderRequest) Data(strict bool) (map[string]any, error) {
	data := o.data()
	if !strict {
		return data, nil
	}

	violations := o.violations()
	if err := orderSchema.Validate(data); err != nil {
		var strictErr *api.StrictModeError
		if !errors.As(err, &strictErr) {
			return nil, err
		}
		violations = append(violations, strictErr.Violations...)
	}
	if len(violations) > 0 {
		return nil, &api.StrictModeError{Violations: violations}
	}
	return data, nil
}

func (o *OrderRequest) data() map[string]any {
	data := make(map[string]any, len(o.Extra)+16)
	for k, v := range o.Extra {
		data[k] = v
	}

	data["type"] = string(o.orderType())
	data["order_id"] = o.OrderID
	data["currency"] = o.Money.Currency
	data["amount"] = o.Money.Amount
	putString(data, "gateway", o.GatewayCode)
	putString(data, "description", o.Description)

	if hasGatewayInfo(o.GatewayInfo) {
		data["gateway_info"] = o.GatewayInfo.Data()
	}
	if o.PaymentOptions != nil {
		data["payment_options"] = o.PaymentOptions.Data()
	}
	if o.Customer != nil {
		data["customer"] = o.Customer.Data()
	}
	if o.Delivery != nil {
		data["delivery"] = o.Delivery.Data()
	}
	if o.Plugin != nil {
		data["plugin"] = o.Plugin.Data()
	}
	if o.SecondChance != nil {
		data["second_chance"] = o.SecondChance.Data()
	}
	if o.ShoppingCart != nil {
		data["shopping_cart"] = o.ShoppingCart.Data()
	}
	if o.CheckoutOptions != nil {
		data["checkout_options"] = o.CheckoutOptions.Data()
	}

	putString(data, "var1", o.Var1)
	putString(data, "var2", o.Var2)
	putString(data, "var3", o.Var3)
	if o.DaysActive > 0 {
		data["days_active"] = o.DaysActive
	}

	return api.Compact(data)
}

// violations checks the rules a schema cannot express: gateway info
// compatibility and the shopping cart total.
func (o *OrderRequest) violations() []string {
	var out []string

	if hasGatewayInfo(o.GatewayInfo) {
		name := gatewayInfoName(o.GatewayInfo)
		if !containsString(o.GatewayInfo.CompatibleGateways(), strings.ToUpper(o.GatewayCode)) {
			out = append(out, fmt.Sprintf("gateway_info %s is not compatible with gateway %q", name, o.GatewayCode))
		}
		if !containsType(o.GatewayInfo.CompatibleTypes(), o.orderType()) {
			out = append(out, fmt.Sprintf("gateway_info %s is not compatible with order type %q", name, o.orderType()))
		}
	}

	if o.ShoppingCart != nil {
		total := o.ShoppingCart.Total(o.CheckoutOptions, o.Money.Currency)
		if total != o.Money.Amount {
			out = append(out, fmt.Sprintf("shopping cart total %d does not match order amount %d", total, o.Money.Amount))
		}
	}

	return out
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsType(list []OrderType, v OrderType) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
