package transactions

import (
	"encoding/json"
	"fmt"

	"multisafepay-sdk/api"
	"multisafepay-sdk/money"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusInitialized     Status = "initialized"
	StatusUncleared       Status = "uncleared"
	StatusCompleted       Status = "completed"
	StatusDeclined        Status = "declined"
	StatusCancelled       Status = "cancelled"
	StatusVoid            Status = "void"
	StatusExpired         Status = "expired"
	StatusRefunded        Status = "refunded"
	StatusPartialRefunded Status = "partial_refunded"
	StatusReserved        Status = "reserved"
	StatusChargedBack     Status = "chargedback"
	StatusShipped         Status = "shipped"
)

// Transaction is the server-side state of an order.
type Transaction struct {
	OrderID         api.FlexString  `json:"order_id" yaml:"order_id"`
	TransactionID   api.FlexString  `json:"transaction_id,omitempty" yaml:"transaction_id,omitempty"`
	Status          Status          `json:"status,omitempty" yaml:"status,omitempty"`
	FinancialStatus string          `json:"financial_status,omitempty" yaml:"financial_status,omitempty"`
	Amount          int64           `json:"amount" yaml:"amount"`
	AmountRefunded  int64           `json:"amount_refunded,omitempty" yaml:"amount_refunded,omitempty"`
	Currency        string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty"`
	PaymentURL      string          `json:"payment_url,omitempty" yaml:"payment_url,omitempty"`
	Created         string          `json:"created,omitempty" yaml:"created,omitempty"`
	Modified        string          `json:"modified,omitempty" yaml:"modified,omitempty"`
	Customer        *CustomerInfo   `json:"customer,omitempty" yaml:"customer,omitempty"`
	PaymentDetails  *PaymentDetails `json:"payment_details,omitempty" yaml:"payment_details,omitempty"`

	Raw map[string]any `json:"-" yaml:"-"`
}

// CustomerInfo is the customer as stored with the order.
type CustomerInfo struct {
	FirstName   string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone1      string `json:"phone1,omitempty" yaml:"phone1,omitempty"`
	Address1    string `json:"address1,omitempty" yaml:"address1,omitempty"`
	Address2    string `json:"address2,omitempty" yaml:"address2,omitempty"`
	HouseNumber string `json:"house_number,omitempty" yaml:"house_number,omitempty"`
	ZipCode     string `json:"zip_code,omitempty" yaml:"zip_code,omitempty"`
	City        string `json:"city,omitempty" yaml:"city,omitempty"`
	State       string `json:"state,omitempty" yaml:"state,omitempty"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Locale      string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// PaymentDetails describes how the order was paid.
type PaymentDetails struct {
	Type                  string         `json:"type,omitempty" yaml:"type,omitempty"`
	AccountHolderName     string         `json:"account_holder_name,omitempty" yaml:"account_holder_name,omitempty"`
	AccountID             api.FlexString `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	ExternalTransactionID api.FlexString `json:"external_transaction_id,omitempty" yaml:"external_transaction_id,omitempty"`
	RecurringID           string         `json:"recurring_id,omitempty" yaml:"recurring_id,omitempty"`
}

// NewTransaction decodes a transaction from a JSON object.
func NewTransaction(raw []byte) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if err := json.Unmarshal(raw, &tx.Raw); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return &tx, nil
}

func transactionFromResponse(resp *api.Response) (*Transaction, error) {
	var tx Transaction
	if err := resp.DecodeData(&tx); err != nil {
		return nil, err
	}
	tx.Raw = resp.Data()
	return &tx, nil
}

// Money returns the order amount with its currency.
func (t *Transaction) Money() money.Money {
	return money.Money{Amount: t.Amount, Currency: t.Currency}
}

// IsPaid reports whether the customer completed the payment.
func (t *Transaction) IsPaid() bool {
	switch t.Status {
	case StatusCompleted, StatusShipped:
		return true
	default:
		return false
	}
}

// RefundResult is returned by a refund call.
type RefundResult struct {
	TransactionID api.FlexString `json:"transaction_id" yaml:"transaction_id"`
	RefundID      api.FlexString `json:"refund_id" yaml:"refund_id"`

	Raw map[string]any `json:"-" yaml:"-"`
}
