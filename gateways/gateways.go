package gateways

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"multisafepay-sdk/api"
)

// Gateway codes accepted by the API.
const (
	AfterPay         = "AFTERPAY"
	AmericanExpress  = "AMEX"
	ApplePay         = "APPLEPAY"
	Bancontact       = "MISTERCASH"
	BankTransfer     = "BANKTRANS"
	Creditcard       = "CREDITCARD"
	DirectBank       = "DIRECTBANK"
	DirectDebit      = "DIRDEB"
	Einvoice         = "EINVOICE"
	Giropay          = "GIROPAY"
	GooglePay        = "GOOGLEPAY"
	Ideal            = "IDEAL"
	In3              = "IN3"
	Klarna           = "KLARNA"
	Maestro          = "MAESTRO"
	Mastercard       = "MASTERCARD"
	PayAfterDelivery = "PAYAFTER"
	PayPal           = "PAYPAL"
	Visa             = "VISA"
)

var ErrMissingCode = errors.New("gateway code is required")

// Gateway is a payment method enabled on the merchant account.
type Gateway struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Manager reads gateway data.
type Manager struct {
	client api.Requester
}

// NewManager creates a gateway manager on top of client.
func NewManager(client api.Requester) *Manager {
	return &Manager{client: client}
}

// List returns the gateways available to the merchant, optionally
// including coupon gateways.
func (m *Manager) List(ctx context.Context, includeCoupons bool) ([]Gateway, error) {
	params := url.Values{}
	if includeCoupons {
		params.Set("include_coupons", "1")
	}

	resp, err := m.client.CreateGetRequest(ctx, "gateways", params)
	if err != nil {
		return nil, err
	}

	var out []Gateway
	if err := resp.DecodeData(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single gateway by code.
func (m *Manager) Get(ctx context.Context, code string) (*Gateway, error) {
	code = normalize(code)
	if code == "" {
		return nil, ErrMissingCode
	}

	resp, err := m.client.CreateGetRequest(ctx, "gateways/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}

	var out Gateway
	if err := resp.DecodeData(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Known reports whether code is one of the gateway constants.
func Known(code string) bool {
	_, ok := known[normalize(code)]
	return ok
}

var known = map[string]struct{}{
	AfterPay: {}, AmericanExpress: {}, ApplePay: {}, Bancontact: {},
	BankTransfer: {}, Creditcard: {}, DirectBank: {}, DirectDebit: {},
	Einvoice: {}, Giropay: {}, GooglePay: {}, Ideal: {}, In3: {},
	Klarna: {}, Maestro: {}, Mastercard: {}, PayAfterDelivery: {},
	PayPal: {}, Visa: {},
}
