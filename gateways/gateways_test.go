package gateways

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"multisafepay-sdk/api"
)

type requesterMock struct{ mock.Mock }

func (m *requesterMock) CreatePostRequest(ctx context.Context, endpoint string, body api.RequestBody) (*api.Response, error) {
	args := m.Called(ctx, endpoint, body)
	r, _ := args.Get(0).(*api.Response)
	return r, args.Error(1)
}

func (m *requesterMock) CreateGetRequest(ctx context.Context, endpoint string, params url.Values) (*api.Response, error) {
	args := m.Called(ctx, endpoint, params)
	r, _ := args.Get(0).(*api.Response)
	return r, args.Error(1)
}

func response(t *testing.T, raw string) *api.Response {
	t.Helper()
	resp, err := api.NewResponse([]byte(raw), api.RequestContext{StatusCode: 200})
	require.NoError(t, err)
	return resp
}

func TestManager_List(t *testing.T) {
	ctx := context.Background()

	var tests = []struct {
		name           string
		includeCoupons bool
		requester      func() *requesterMock
		expected       []Gateway
		expectedErr    error
	}{
		{
			name: "without coupons",
			requester: func() *requesterMock {
				r := new(requesterMock)
				r.On("CreateGetRequest", ctx, "gateways", url.Values{}).
					Return(response(t, `{"success": true, "data": [{"id": "IDEAL", "description": "iDEAL"}, {"id": "VISA", "description": "Visa"}]}`), nil)
				return r
			},
			expected: []Gateway{{ID: "IDEAL", Description: "iDEAL"}, {ID: "VISA", Description: "Visa"}},
		},
		{
			name:           "with coupons",
			includeCoupons: true,
			requester: func() *requesterMock {
				r := new(requesterMock)
				r.On("CreateGetRequest", ctx, "gateways", url.Values{"include_coupons": {"1"}}).
					Return(response(t, `{"success": true, "data": [{"id": "VVVGIFTCRD", "description": "VVV Cadeaukaart", "type": "coupon"}]}`), nil)
				return r
			},
			expected: []Gateway{{ID: "VVVGIFTCRD", Description: "VVV Cadeaukaart", Type: "coupon"}},
		},
		{
			name: "api error",
			requester: func() *requesterMock {
				r := new(requesterMock)
				r.On("CreateGetRequest", ctx, "gateways", url.Values{}).Return(nil, &api.Error{StatusCode: 401, Code: 1032})
				return r
			},
			expectedErr: &api.Error{StatusCode: 401, Code: 1032},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := tt.requester()
			got, err := NewManager(r).List(ctx, tt.includeCoupons)
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, api.IsAPIError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			r.AssertExpectations(t)
		})
	}
}

func TestManager_Get(t *testing.T) {
	ctx := context.Background()
	r := new(requesterMock)
	r.On("CreateGetRequest", ctx, "gateways/IDEAL", url.Values(nil)).
		Return(response(t, `{"success": true, "data": {"id": "IDEAL", "description": "iDEAL"}}`), nil)

	got, err := NewManager(r).Get(ctx, " ideal ")
	require.NoError(t, err)
	assert.Equal(t, &Gateway{ID: "IDEAL", Description: "iDEAL"}, got)

	_, err = NewManager(r).Get(ctx, "")
	require.ErrorIs(t, err, ErrMissingCode)
	r.AssertExpectations(t)
}

func TestIssuerManager_List(t *testing.T) {
	ctx := context.Background()
	r := new(requesterMock)
	r.On("CreateGetRequest", ctx, "issuers/IDEAL", url.Values(nil)).
		Return(response(t, `{"success": true, "data": [{"code": 3151, "description": "Test bank"}, {"code": "0021", "description": "Rabobank"}]}`), nil)

	issuers, err := NewIssuerManager(r).List(ctx, "ideal")
	require.NoError(t, err)
	assert.Equal(t, []Issuer{{Code: "3151", Description: "Test bank"}, {Code: "0021", Description: "Rabobank"}}, issuers)
	r.AssertExpectations(t)
}

func TestIssuerManager_ListUnsupportedGateway(t *testing.T) {
	r := new(requesterMock)

	_, err := NewIssuerManager(r).List(context.Background(), Visa)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoIssuers))
	r.AssertNotCalled(t, "CreateGetRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("ideal"))
	assert.True(t, Known(Creditcard))
	assert.False(t, Known("BITCOIN"))
}
