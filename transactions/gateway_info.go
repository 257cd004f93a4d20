package transactions

import (
	"multisafepay-sdk/gateways"
	"multisafepay-sdk/valueobject"
)

// GatewayInfo carries payment-method specific fields. The set of
// implementations is closed: Creditcard, Ideal, Account and Meta.
type GatewayInfo interface {
	Data() map[string]any
	CompatibleGateways() []string
	CompatibleTypes() []OrderType
	gatewayInfo()
}

// Creditcard holds card details for direct card orders.
type Creditcard struct {
	CardNumber     valueobject.CardNumber
	CardHolderName string
	ExpiryDate     valueobject.Date
	Cvc            valueobject.Cvc
	Flexible3D     bool
}

// Data returns the gateway_info object for a direct card payment.
func (c Creditcard) Data() map[string]any {
	return map[string]any{
		"card_number":      c.CardNumber.String(),
		"card_holder_name": c.CardHolderName,
		"card_expiry_date": c.ExpiryDate.Expiry(),
		"card_cvc":         c.Cvc.String(),
		"flexible_3d":      c.Flexible3D,
	}
}

// CompatibleGateways lists the card gateways that accept card details.
func (Creditcard) CompatibleGateways() []string {
	return []string{gateways.Creditcard, gateways.Visa}
}

// CompatibleTypes reports that card details are only sent with direct orders.
func (Creditcard) CompatibleTypes() []OrderType {
	return []OrderType{TypeDirect}
}

func (Creditcard) gatewayInfo() {}

// Ideal selects the customer's bank for iDEAL.
type Ideal struct {
	IssuerID string
}

// Data returns the gateway_info object carrying the issuer.
func (i Ideal) Data() map[string]any {
	return map[string]any{"issuer_id": i.IssuerID}
}

// CompatibleGateways returns IDEAL.
func (Ideal) CompatibleGateways() []string {
	return []string{gateways.Ideal}
}

// CompatibleTypes allows redirect and direct iDEAL orders.
func (Ideal) CompatibleTypes() []OrderType {
	return []OrderType{TypeRedirect, TypeDirect}
}

func (Ideal) gatewayInfo() {}

// Account holds bank account details for direct debit.
type Account struct {
	AccountID         string
	AccountHolderName string
	AccountHolderIBAN string
	EmandateID        string
}

// Data returns the gateway_info object for a direct debit.
func (a Account) Data() map[string]any {
	data := map[string]any{}
	putString(data, "account_id", a.AccountID)
	putString(data, "account_holder_name", a.AccountHolderName)
	putString(data, "account_holder_iban", a.AccountHolderIBAN)
	putString(data, "emandate", a.EmandateID)
	return data
}

// CompatibleGateways returns DIRDEB.
func (Account) CompatibleGateways() []string {
	return []string{gateways.DirectDebit}
}

// CompatibleTypes reports that direct debits are direct orders.
func (Account) CompatibleTypes() []OrderType {
	return []OrderType{TypeDirect}
}

func (Account) gatewayInfo() {}

// Meta holds the customer details required by pay-after-delivery and
// billing suite gateways.
type Meta struct {
	Birthday    valueobject.Date
	BankAccount string
	Phone       valueobject.PhoneNumber
	Email       valueobject.Email
	Gender      string
}

// Data returns the gateway_info object used by pay-later gateways.
func (m Meta) Data() map[string]any {
	data := map[string]any{}
	if !m.Birthday.IsZero() {
		data["birthday"] = m.Birthday.String()
	}
	putString(data, "bank_account", m.BankAccount)
	putString(data, "phone", m.Phone.String())
	putString(data, "email", m.Email.String())
	putString(data, "gender", m.Gender)
	return data
}

// CompatibleGateways lists the pay-after-delivery family.
func (Meta) CompatibleGateways() []string {
	return []string{
		gateways.PayAfterDelivery,
		gateways.Einvoice,
		gateways.In3,
		gateways.Klarna,
		gateways.AfterPay,
	}
}

// CompatibleTypes allows direct and redirect orders.
func (Meta) CompatibleTypes() []OrderType {
	return []OrderType{TypeDirect, TypeRedirect}
}

func (Meta) gatewayInfo() {}

func gatewayInfoName(info GatewayInfo) string {
	switch info.(type) {
	case Creditcard, *Creditcard:
		return "creditcard"
	case Ideal, *Ideal:
		return "ideal"
	case Account, *Account:
		return "account"
	case Meta, *Meta:
		return "meta"
	default:
		return "unknown"
	}
}

// hasGatewayInfo reports whether info carries a value. A typed nil
// pointer variant counts as absent.
func hasGatewayInfo(info GatewayInfo) bool {
	switch v := info.(type) {
	case nil:
		return false
	case *Creditcard:
		return v != nil
	case *Ideal:
		return v != nil
	case *Account:
		return v != nil
	case *Meta:
		return v != nil
	default:
		return true
	}
}
