// Package notification verifies and decodes the webhook calls MultiSafepay
// makes when an order changes status.
package notification

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"multisafepay-sdk/transactions"
)

// AuthHeader carries the signature of a POST notification.
const AuthHeader = "Auth"

var (
	ErrMalformedHeader  = errors.New("malformed notification auth header")
	ErrExpired          = errors.New("notification timestamp is too old")
	ErrFromFuture       = errors.New("notification timestamp is in the future")
	ErrInvalidSignature = errors.New("invalid notification signature")
)

// Verifier checks notification signatures against one API key.
type Verifier struct {
	apiKey string
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier returns a Verifier. Timestamps more than maxAge before or
// after the current time are rejected; a maxAge of zero or less disables
// the timestamp check.
func NewVerifier(apiKey string, maxAge time.Duration) *Verifier {
	return &Verifier{apiKey: apiKey, maxAge: maxAge, now: time.Now}
}

// Verify checks authHeader against body.
func (v *Verifier) Verify(body []byte, authHeader string) error {
	ts, sig, err := parseHeader(authHeader)
	if err != nil {
		return err
	}

	if v.maxAge > 0 {
		sec, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return fmt.Errorf("%w: timestamp %q", ErrMalformedHeader, ts)
		}
		whole, frac := math.Modf(sec)
		sent := time.Unix(int64(whole), int64(frac*float64(time.Second)))
		now := v.now()
		if now.Sub(sent) > v.maxAge {
			return ErrExpired
		}
		if sent.Sub(now) > v.maxAge {
			return ErrFromFuture
		}
	}

	expected := signature(ts, body, v.apiKey)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(sig))) {
		return ErrInvalidSignature
	}
	return nil
}

// Verify checks a notification with a one-off Verifier.
func Verify(body []byte, authHeader, apiKey string, maxAge time.Duration) error {
	return NewVerifier(apiKey, maxAge).Verify(body, authHeader)
}

// Sign builds the Auth header value MultiSafepay sends for body at ts.
func Sign(body []byte, apiKey string, ts time.Time) string {
	stamp := strconv.FormatInt(ts.Unix(), 10)
	return base64.StdEncoding.EncodeToString([]byte(stamp + ":" + signature(stamp, body, apiKey)))
}

// ParseTransaction decodes a POST notification body.
func ParseTransaction(body []byte) (*transactions.Transaction, error) {
	tx, err := transactions.NewTransaction(body)
	if err != nil {
		return nil, err
	}
	if tx.OrderID == "" {
		return nil, transactions.ErrMissingOrderID
	}
	return tx, nil
}

func parseHeader(header string) (string, string, error) {
	if header == "" {
		return "", "", fmt.Errorf("%w: empty", ErrMalformedHeader)
	}
	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	ts, sig, ok := strings.Cut(string(decoded), ":")
	if !ok || ts == "" || sig == "" {
		return "", "", fmt.Errorf("%w: expected timestamp:signature", ErrMalformedHeader)
	}
	return ts, sig, nil
}

func signature(ts string, body []byte, apiKey string) string {
	mac := hmac.New(sha512.New, []byte(apiKey))
	mac.Write([]byte(ts))
	mac.Write([]byte(":"))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
