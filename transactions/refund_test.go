package transactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multisafepay-sdk/api"
	"multisafepay-sdk/money"
)

func TestRefundRequest_Data(t *testing.T) {
	var tests = []struct {
		name        string
		amount      money.Money
		description string
		expected    string
	}{
		{
			name:        "with description",
			amount:      money.EUR(1250),
			description: "Returned goods",
			expected:    "{\n    \"amount\": 1250,\n    \"currency\": \"EUR\",\n    \"description\": \"Returned goods\"\n}",
		},
		{
			name:     "empty description is still sent",
			amount:   money.Money{Amount: 300, Currency: "JPY"},
			expected: "{\n    \"amount\": 300,\n    \"currency\": \"JPY\",\n    \"description\": \"\"\n}",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			data, err := NewRefundRequest(tt.amount, tt.description).Data(true)
			require.NoError(t, err)
			require.Len(t, data, 3)

			encoded, err := api.Encode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(encoded))
		})
	}
}

func TestRefundRequest_StrictMode(t *testing.T) {
	_, err := NewRefundRequest(money.Money{Amount: 0, Currency: "EUR"}, "").Data(true)
	require.Error(t, err)
	assert.True(t, api.IsStrictMode(err))

	_, err = NewRefundRequest(money.Money{Amount: 100, Currency: "eur"}, "").Data(true)
	require.Error(t, err)
	assert.True(t, api.IsStrictMode(err))

	data, err := NewRefundRequest(money.Money{Amount: 0, Currency: "EUR"}, "").Data(false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), data["amount"])
}
