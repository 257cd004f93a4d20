package gateways

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"multisafepay-sdk/api"
)

var ErrNoIssuers = errors.New("gateway has no issuers")

// Gateways whose payment methods are split per issuing bank.
var issuerGateways = map[string]bool{
	Ideal: true,
}

// Issuer is a bank the customer can pick for an issuer-based gateway.
type Issuer struct {
	Code        api.FlexString `json:"code" yaml:"code"`
	Description string         `json:"description" yaml:"description"`
}

// HasIssuers reports whether the gateway lets the customer pick a bank.
func HasIssuers(gatewayCode string) bool {
	return issuerGateways[normalize(gatewayCode)]
}

// IssuerManager lists issuers of issuer-based gateways.
type IssuerManager struct {
	client api.Requester
}

// NewIssuerManager creates an issuer manager on top of client.
func NewIssuerManager(client api.Requester) *IssuerManager {
	return &IssuerManager{client: client}
}

// List returns the issuers of gatewayCode. Gateways without issuers are
// rejected without calling the API.
func (m *IssuerManager) List(ctx context.Context, gatewayCode string) ([]Issuer, error) {
	code := normalize(gatewayCode)
	if !HasIssuers(code) {
		return nil, fmt.Errorf("%w: %q", ErrNoIssuers, gatewayCode)
	}

	resp, err := m.client.CreateGetRequest(ctx, "issuers/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}

	var out []Issuer
	if err := resp.DecodeData(&out); err != nil {
		return nil, err
	}
	return out, nil
}
