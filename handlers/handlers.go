package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"multisafepay-sdk/logging"
	"multisafepay-sdk/notification"
	"multisafepay-sdk/transactions"
)

// maxNotificationBytes bounds POST notification bodies, which are read
// before the signature is checked.
const maxNotificationBytes = 1 << 20

// OrderService is what the notification handler needs from the service layer.
type OrderService interface {
	GetOrder(ctx context.Context, orderID string) (*transactions.Transaction, error)
	HandleNotification(ctx context.Context, tx *transactions.Transaction, kind string)
}

// NotificationHandler receives MultiSafepay webhook calls.
type NotificationHandler struct {
	orders   OrderService
	verifier *notification.Verifier
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(orders OrderService, verifier *notification.Verifier) *NotificationHandler {
	return &NotificationHandler{
		orders:   orders,
		verifier: verifier,
	}
}

// Post handles signed POST notifications carrying the order as JSON.
func (h *NotificationHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)
	logger := logging.WithTraceContext(span)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Rejected oversized notification", zap.Int64("limit", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "notification body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
		return
	}

	if err := h.verifier.Verify(body, c.GetHeader(notification.AuthHeader)); err != nil {
		logger.Warn("Rejected notification", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	tx, err := notification.ParseTransaction(body)
	if err != nil {
		logger.Warn("Invalid notification body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.orders.HandleNotification(ctx, tx, "post")
	span.AddEvent("notification_processed")
	c.String(http.StatusOK, "OK")
}

// Get handles the legacy GET notification, which only names the order.
func (h *NotificationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	orderID := c.Query("transactionid")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionid is required"})
		return
	}

	tx, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		logging.WithTraceContext(span).Error("Notification order lookup failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		status := http.StatusBadGateway
		if errors.Is(err, transactions.ErrMissingOrderID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "order lookup failed"})
		return
	}

	h.orders.HandleNotification(ctx, tx, "get")
	span.AddEvent("notification_processed")
	c.String(http.StatusOK, "OK")
}

// HealthCheck handles health check requests
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
