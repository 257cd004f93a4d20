package transactions

import (
	"context"
	"errors"
	"net/url"

	"multisafepay-sdk/api"
	"multisafepay-sdk/money"
)

var (
	ErrMissingOrder   = errors.New("order request is required")
	ErrMissingOrderID = errors.New("order id is required")
)

// Manager creates, reads and refunds orders.
type Manager struct {
	client api.Requester
}

// NewManager creates a transaction manager on top of client.
func NewManager(client api.Requester) *Manager {
	return &Manager{client: client}
}

// Create registers a new order.
func (m *Manager) Create(ctx context.Context, req *OrderRequest) (*Transaction, error) {
	if req == nil {
		return nil, ErrMissingOrder
	}
	resp, err := m.client.CreatePostRequest(ctx, "orders", req)
	if err != nil {
		return nil, err
	}
	return transactionFromResponse(resp)
}

// Get returns the current state of an order.
func (m *Manager) Get(ctx context.Context, orderID string) (*Transaction, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	resp, err := m.client.CreateGetRequest(ctx, "orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}
	return transactionFromResponse(resp)
}

// Refund refunds amount of the given order.
func (m *Manager) Refund(ctx context.Context, tx *Transaction, amount money.Money, description string) (*RefundResult, error) {
	if tx == nil || tx.OrderID == "" {
		return nil, ErrMissingOrderID
	}

	endpoint := "orders/" + url.PathEscape(tx.OrderID.String()) + "/refunds"
	resp, err := m.client.CreatePostRequest(ctx, endpoint, NewRefundRequest(amount, description))
	if err != nil {
		return nil, err
	}

	var result RefundResult
	if err := resp.DecodeData(&result); err != nil {
		return nil, err
	}
	result.Raw = resp.Data()
	return &result, nil
}
