package transactions

import (
	"multisafepay-sdk/money"
)

// RefundRequest is the payload of POST orders/{id}/refunds. All three
// fields are always sent; an empty description is sent as "".
type RefundRequest struct {
	Money       money.Money
	Description string
}

// NewRefundRequest creates a refund of amount with an optional description.
func NewRefundRequest(amount money.Money, description string) *RefundRequest {
	return &RefundRequest{Money: amount, Description: description}
}

// Data implements api.RequestBody.
func (r *RefundRequest) Data(strict bool) (map[string]any, error) {
	data := map[string]any{
		"amount":      r.Money.Amount,
		"currency":    r.Money.Currency,
		"description": r.Description,
	}
	if strict {
		if err := refundSchema.Validate(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}
