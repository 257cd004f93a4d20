// Package valueobject holds validated values used in order requests.
package valueobject

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidCvc        = errors.New("invalid cvc")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidCountry    = errors.New("invalid country code")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidIPAddress  = errors.New("invalid ip address")
)

var (
	validate = validator.New()

	separators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// CardNumber is a card number that passed the Luhn check.
type CardNumber struct{ value string }

// NewCardNumber accepts 12 to 19 digits, spaces and dashes ignored, that
// pass the Luhn check.
func NewCardNumber(number string) (CardNumber, error) {
	n := separators.Replace(number)
	if err := validate.Var(n, "credit_card"); err != nil {
		return CardNumber{}, ErrInvalidCardNumber
	}
	return CardNumber{value: n}, nil
}

// String returns the digits without separators.
func (c CardNumber) String() string { return c.value }

// Masked keeps the last four digits.
func (c CardNumber) Masked() string {
	if len(c.value) < 4 {
		return c.value
	}
	return strings.Repeat("*", len(c.value)-4) + c.value[len(c.value)-4:]
}

// Cvc is a 3 or 4 digit card verification code.
type Cvc struct{ value string }

// NewCvc validates a card verification code.
func NewCvc(cvc string) (Cvc, error) {
	c := strings.TrimSpace(cvc)
	if err := validate.Var(c, "number,min=3,max=4"); err != nil {
		return Cvc{}, ErrInvalidCvc
	}
	return Cvc{value: c}, nil
}

// String returns the code.
func (c Cvc) String() string { return c.value }

// Date is a calendar date without time of day.
type Date struct{ t time.Time }

var dateLayouts = []string{"2006-01-02", "02-01-2006", "01/06", "01/2006", "2006-01"}

// NewDate drops the time of day from t.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts ISO dates and card expiry forms such as "12/27".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// Format formats the date, or returns "" when it is unset.
func (d Date) Format(layout string) string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

// String is the ISO form used for birthdays.
func (d Date) String() string { return d.Format("2006-01-02") }

// Expiry is the two-digit month and year form used for card expiry dates.
func (d Date) Expiry() string { return d.Format("0106") }

// Country is an assigned ISO 3166-1 alpha-2 code.
type Country struct{ code string }

// NewCountry upper-cases code and rejects codes that are not assigned.
func NewCountry(code string) (Country, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if err := validate.Var(c, "iso3166_1_alpha2"); err != nil {
		return Country{}, fmt.Errorf("%w: %q", ErrInvalidCountry, code)
	}
	return Country{code: c}, nil
}

// String returns the upper-case code.
func (c Country) String() string { return c.code }

// Email is a syntactically valid email address.
type Email struct{ value string }

// NewEmail validates an email address.
func NewEmail(email string) (Email, error) {
	e := strings.TrimSpace(email)
	if err := validate.Var(e, "required,email"); err != nil {
		return Email{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return Email{value: e}, nil
}

// String returns the address.
func (e Email) String() string { return e.value }

// PhoneNumber is a phone number without separators.
type PhoneNumber struct{ value string }

// NewPhoneNumber strips separators and accepts an E.164 number or a
// national number of 6 to 20 digits.
func NewPhoneNumber(phone string) (PhoneNumber, error) {
	p := separators.Replace(strings.TrimSpace(phone))
	if err := validate.Var(p, "e164|number,min=6,max=20"); err != nil {
		return PhoneNumber{}, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return PhoneNumber{value: p}, nil
}

// String returns the number.
func (p PhoneNumber) String() string { return p.value }

// IPAddress is an IPv4 or IPv6 address.
type IPAddress struct{ value string }

// NewIPAddress validates an IP address.
func NewIPAddress(ip string) (IPAddress, error) {
	v := strings.TrimSpace(ip)
	if err := validate.Var(v, "required,ip"); err != nil {
		return IPAddress{}, fmt.Errorf("%w: %q", ErrInvalidIPAddress, ip)
	}
	return IPAddress{value: v}, nil
}

// String returns the address.
func (i IPAddress) String() string { return i.value }
