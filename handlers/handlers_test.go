package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"multisafepay-sdk/monitoring"
	"multisafepay-sdk/notification"
	"multisafepay-sdk/transactions"
)

const apiKey = "test-api-key"

type orderServiceMock struct{ mock.Mock }

func (m *orderServiceMock) GetOrder(ctx context.Context, orderID string) (*transactions.Transaction, error) {
	args := m.Called(ctx, orderID)
	tx, _ := args.Get(0).(*transactions.Transaction)
	return tx, args.Error(1)
}

func (m *orderServiceMock) HandleNotification(ctx context.Context, tx *transactions.Transaction, kind string) {
	m.Called(ctx, tx, kind)
}

func newTestRouter(t *testing.T, svc OrderService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	instruments, err := monitoring.NewInstruments(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return NewRouter("test", NewNotificationHandler(svc, notification.NewVerifier(apiKey, time.Hour)), instruments)
}

func TestNotification_Post(t *testing.T) {
	body := []byte(`{"order_id":"order-1","status":"completed","amount":1000,"currency":"EUR"}`)

	var tests = []struct {
		name   string
		body   []byte
		auth   string
		setup  func(m *orderServiceMock)
		status int
		reply  string
	}{
		{
			name: "signed notification",
			body: body,
			auth: notification.Sign(body, apiKey, time.Now()),
			setup: func(m *orderServiceMock) {
				m.On("HandleNotification", mock.Anything, mock.MatchedBy(func(tx *transactions.Transaction) bool {
					return tx.OrderID == "order-1" && tx.Status == transactions.StatusCompleted
				}), "post").Return()
			},
			status: http.StatusOK,
			reply:  "OK",
		},
		{
			name:   "bad signature",
			body:   body,
			auth:   notification.Sign(body, "wrong-key", time.Now()),
			setup:  func(m *orderServiceMock) {},
			status: http.StatusUnauthorized,
		},
		{
			name:   "missing header",
			body:   body,
			setup:  func(m *orderServiceMock) {},
			status: http.StatusUnauthorized,
		},
		{
			name:   "oversized body",
			body:   bytes.Repeat([]byte("a"), maxNotificationBytes+1),
			auth:   notification.Sign([]byte("a"), apiKey, time.Now()),
			setup:  func(m *orderServiceMock) {},
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "signed but invalid body",
			body:   []byte(`not json`),
			auth:   notification.Sign([]byte(`not json`), apiKey, time.Now()),
			setup:  func(m *orderServiceMock) {},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := new(orderServiceMock)
			tt.setup(m)

			req := httptest.NewRequest(http.MethodPost, "/notifications", bytes.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set(notification.AuthHeader, tt.auth)
			}
			rr := httptest.NewRecorder()
			newTestRouter(t, m).ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)
			if tt.reply != "" {
				assert.Equal(t, tt.reply, rr.Body.String())
			}
			m.AssertExpectations(t)
		})
	}
}

func TestNotification_Get(t *testing.T) {
	var tests = []struct {
		name   string
		target string
		setup  func(m *orderServiceMock)
		status int
	}{
		{
			name:   "fetches and handles order",
			target: "/notifications?transactionid=order-1",
			setup: func(m *orderServiceMock) {
				tx := &transactions.Transaction{OrderID: "order-1", Status: transactions.StatusCompleted}
				m.On("GetOrder", mock.Anything, "order-1").Return(tx, nil)
				m.On("HandleNotification", mock.Anything, tx, "get").Return()
			},
			status: http.StatusOK,
		},
		{
			name:   "missing transactionid",
			target: "/notifications",
			setup:  func(m *orderServiceMock) {},
			status: http.StatusBadRequest,
		},
		{
			name:   "lookup fails",
			target: "/notifications?transactionid=order-2",
			setup: func(m *orderServiceMock) {
				m.On("GetOrder", mock.Anything, "order-2").Return(nil, errors.New("upstream down"))
			},
			status: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := new(orderServiceMock)
			tt.setup(m)

			rr := httptest.NewRecorder()
			newTestRouter(t, m).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.status, rr.Code)
			m.AssertExpectations(t)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, new(orderServiceMock)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}
