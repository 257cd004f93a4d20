package transactions

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multisafepay-sdk/api"
	"multisafepay-sdk/gateways"
	"multisafepay-sdk/money"
	"multisafepay-sdk/valueobject"
)

func idealRedirectOrder(t *testing.T) *OrderRequest {
	t.Helper()
	country, err := valueobject.NewCountry("NL")
	require.NoError(t, err)
	email, err := valueobject.NewEmail("example@multisafepay.com")
	require.NoError(t, err)

	order := NewRedirectOrder("my-order-id-1", money.EUR(20), gateways.Ideal)
	order.GatewayInfo = Ideal{IssuerID: "0021"}
	order.Description = "Order #1 with https://example.com/shop"
	order.PaymentOptions = &PaymentOptions{
		NotificationURL: "https://example.com/notify",
		RedirectURL:     "https://example.com/return",
		CancelURL:       "https://example.com/cancel",
		CloseWindow:     true,
	}
	order.Customer = &CustomerDetails{
		FirstName: "John",
		LastName:  "Doe",
		Address:   Address{Address1: "Kraanspoor", HouseNumber: "39", ZipCode: "1033SC", City: "Amsterdam", Country: country},
		Email:     email,
		Locale:    "nl_NL",
	}
	order.Plugin = &PluginDetails{ApplicationName: "multisafepay-sdk", ApplicationVersion: "1.0.0", PluginVersion: "1.0.0"}
	order.SecondChance = &SecondChance{SendEmail: true}
	return order
}

func TestOrderRequest_Data(t *testing.T) {
	order := idealRedirectOrder(t)

	data, err := order.Data(true)
	require.NoError(t, err)

	assert.Equal(t, "redirect", data["type"])
	assert.Equal(t, "my-order-id-1", data["order_id"])
	assert.Equal(t, "EUR", data["currency"])
	assert.Equal(t, int64(20), data["amount"])
	assert.Equal(t, "IDEAL", data["gateway"])
	assert.Equal(t, map[string]any{"issuer_id": "0021"}, data["gateway_info"])
	assert.Equal(t, map[string]any{
		"notification_url": "https://example.com/notify",
		"redirect_url":     "https://example.com/return",
		"cancel_url":       "https://example.com/cancel",
		"close_window":     true,
	}, data["payment_options"])
	assert.Equal(t, map[string]any{
		"first_name":   "John",
		"last_name":    "Doe",
		"address1":     "Kraanspoor",
		"house_number": "39",
		"zip_code":     "1033SC",
		"city":         "Amsterdam",
		"country":      "NL",
		"email":        "example@multisafepay.com",
		"locale":       "nl_NL",
	}, data["customer"])
	assert.Equal(t, map[string]any{"send_email": true}, data["second_chance"])
	assert.NotContains(t, data, "delivery")
	assert.NotContains(t, data, "shopping_cart")

	encoded, err := api.Encode(data)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"description": "Order #1 with https://example.com/shop"`)
}

func TestOrderRequest_DefaultsToRedirect(t *testing.T) {
	order := &OrderRequest{OrderID: "1", Money: money.EUR(100)}
	data, err := order.Data(true)
	require.NoError(t, err)
	assert.Equal(t, "redirect", data["type"])
	assert.NotContains(t, data, "gateway")
}

func TestOrderRequest_StrictMode(t *testing.T) {
	card, err := valueobject.NewCardNumber("4111111111111111")
	require.NoError(t, err)
	cvc, err := valueobject.NewCvc("123")
	require.NoError(t, err)
	expiry, err := valueobject.ParseDate("12/30")
	require.NoError(t, err)
	creditcard := Creditcard{CardNumber: card, CardHolderName: "John Doe", ExpiryDate: expiry, Cvc: cvc}

	var tests = []struct {
		name      string
		order     func() *OrderRequest
		violation string
	}{
		{
			name: "creditcard info with ideal gateway",
			order: func() *OrderRequest {
				return NewDirectOrder("1", money.EUR(1000), gateways.Ideal, creditcard)
			},
			violation: `gateway_info creditcard is not compatible with gateway "IDEAL"`,
		},
		{
			name: "creditcard info on redirect order",
			order: func() *OrderRequest {
				o := NewRedirectOrder("1", money.EUR(1000), gateways.Visa)
				o.GatewayInfo = creditcard
				return o
			},
			violation: `gateway_info creditcard is not compatible with order type "redirect"`,
		},
		{
			name: "unexpected extra field",
			order: func() *OrderRequest {
				o := NewRedirectOrder("1", money.EUR(1000), gateways.Ideal)
				o.Extra = map[string]any{"unknown_field": "x"}
				return o
			},
			violation: "unknown_field",
		},
		{
			name: "zero amount",
			order: func() *OrderRequest {
				return NewRedirectOrder("1", money.EUR(0), gateways.Ideal)
			},
			violation: "amount",
		},
		{
			name: "cart total mismatch",
			order: func() *OrderRequest {
				o := NewRedirectOrder("1", money.EUR(1000), gateways.Ideal)
				o.ShoppingCart = &ShoppingCart{Items: []Item{{Name: "Geometric Candle", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1}}}
				return o
			},
			violation: "shopping cart total 500 does not match order amount 1000",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			order := tt.order()

			_, err := order.Data(false)
			require.NoError(t, err)

			_, err = order.Data(true)
			require.Error(t, err)
			var strictErr *api.StrictModeError
			require.ErrorAs(t, err, &strictErr)
			assert.Contains(t, strictErr.Error(), tt.violation)
		})
	}
}

func TestOrderRequest_CompatibleCreditcard(t *testing.T) {
	card, err := valueobject.NewCardNumber("4111111111111111")
	require.NoError(t, err)
	cvc, err := valueobject.NewCvc("123")
	require.NoError(t, err)
	expiry, err := valueobject.ParseDate("12/30")
	require.NoError(t, err)

	order := NewDirectOrder("1", money.EUR(1000), gateways.Creditcard, Creditcard{
		CardNumber:     card,
		CardHolderName: "John Doe",
		ExpiryDate:     expiry,
		Cvc:            cvc,
		Flexible3D:     true,
	})

	data, err := order.Data(true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"card_number":      "4111111111111111",
		"card_holder_name": "John Doe",
		"card_expiry_date": "1230",
		"card_cvc":         "123",
		"flexible_3d":      true,
	}, data["gateway_info"])
}

func TestShoppingCart_Total(t *testing.T) {
	cart := &ShoppingCart{Items: []Item{
		{Name: "Candle", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		{Name: "Gift card", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1, TaxTableSelector: "none"},
	}}
	opts := &CheckoutOptions{
		DefaultRate: decimal.RequireFromString("0.21"),
		Alternate:   []TaxTable{{Name: "none", Rate: decimal.Zero}},
	}

	assert.Equal(t, int64(2920), cart.Total(opts, "EUR"))
	assert.Equal(t, int64(2500), cart.Total(nil, "EUR"))

	order := NewRedirectOrder("1", money.EUR(2920), gateways.Ideal)
	order.ShoppingCart = cart
	order.CheckoutOptions = opts
	data, err := order.Data(true)
	require.NoError(t, err)

	encoded, err := json.Marshal(data["shopping_cart"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": [
		{"name": "Candle", "unit_price": 10, "quantity": 2},
		{"name": "Gift card", "unit_price": 5, "quantity": 1, "tax_table_selector": "none"}
	]}`, string(encoded))

	encoded, err = json.Marshal(data["checkout_options"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"tax_tables": {
		"default": {"shipping_taxed": false, "rate": 0.21},
		"alternate": [{"name": "none", "rules": [{"rate": 0}]}]
	}}`, string(encoded))
}

func TestGatewayInfo_Compatibility(t *testing.T) {
	var tests = []struct {
		info     GatewayInfo
		gateways []string
		types    []OrderType
	}{
		{info: Creditcard{}, gateways: []string{gateways.Creditcard, gateways.Visa}, types: []OrderType{TypeDirect}},
		{info: Ideal{}, gateways: []string{gateways.Ideal}, types: []OrderType{TypeRedirect, TypeDirect}},
		{info: Account{}, gateways: []string{gateways.DirectDebit}, types: []OrderType{TypeDirect}},
		{info: Meta{}, gateways: []string{gateways.PayAfterDelivery, gateways.Einvoice, gateways.In3, gateways.Klarna, gateways.AfterPay}, types: []OrderType{TypeDirect, TypeRedirect}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.gateways, tt.info.CompatibleGateways())
		assert.Equal(t, tt.types, tt.info.CompatibleTypes())
	}
}

func TestMeta_Data(t *testing.T) {
	birthday, err := valueobject.ParseDate("1980-01-30")
	require.NoError(t, err)
	phone, err := valueobject.NewPhoneNumber("0208500500")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"birthday": "1980-01-30",
		"phone":    "0208500500",
		"gender":   "male",
	}, Meta{Birthday: birthday, Phone: phone, Gender: "male"}.Data())

	assert.Equal(t, map[string]any{
		"account_id":          "NL87ABNA0000000001",
		"account_holder_name": "John Doe",
	}, Account{AccountID: "NL87ABNA0000000001", AccountHolderName: "John Doe"}.Data())
}

func TestOrderRequest_NilPointerGatewayInfo(t *testing.T) {
	var tests = []struct {
		name string
		info GatewayInfo
	}{
		{name: "creditcard", info: (*Creditcard)(nil)},
		{name: "ideal", info: (*Ideal)(nil)},
		{name: "account", info: (*Account)(nil)},
		{name: "meta", info: (*Meta)(nil)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			order := NewRedirectOrder("1", money.EUR(1000), gateways.Ideal)
			order.GatewayInfo = tt.info

			for _, strict := range []bool{false, true} {
				data, err := order.Data(strict)
				require.NoError(t, err)
				assert.NotContains(t, data, "gateway_info")
			}
		})
	}

	order := NewRedirectOrder("1", money.EUR(1000), gateways.Ideal)
	order.GatewayInfo = &Ideal{IssuerID: "0021"}
	data, err := order.Data(true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"issuer_id": "0021"}, data["gateway_info"])
}
