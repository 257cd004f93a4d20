// Package sdk bundles a MultiSafepay client with the managers that use it.
package sdk

import (
	"multisafepay-sdk/client"
	"multisafepay-sdk/gateways"
	"multisafepay-sdk/transactions"
)

// SDK shares one Client between the transaction, gateway and issuer
// managers.
type SDK struct {
	client       *client.Client
	transactions *transactions.Manager
	gateways     *gateways.Manager
	issuers      *gateways.IssuerManager
}

// New creates a client for apiKey and wires the managers to it.
func New(apiKey string, isProduction bool, opts ...client.Option) (*SDK, error) {
	c, err := client.New(apiKey, isProduction, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(c), nil
}

// NewWithClient wires the managers to an existing client.
func NewWithClient(c *client.Client) *SDK {
	return &SDK{
		client:       c,
		transactions: transactions.NewManager(c),
		gateways:     gateways.NewManager(c),
		issuers:      gateways.NewIssuerManager(c),
	}
}

// Client returns the shared client.
func (s *SDK) Client() *client.Client { return s.client }

// Transactions returns the order manager.
func (s *SDK) Transactions() *transactions.Manager { return s.transactions }

// Gateways returns the gateway manager.
func (s *SDK) Gateways() *gateways.Manager { return s.gateways }

// Issuers returns the issuer manager.
func (s *SDK) Issuers() *gateways.IssuerManager { return s.issuers }
