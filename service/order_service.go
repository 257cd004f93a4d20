package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"multisafepay-sdk/api"
	"multisafepay-sdk/logging"
	"multisafepay-sdk/money"
	"multisafepay-sdk/monitoring"
	"multisafepay-sdk/transactions"
)

// TransactionAPI is the part of transactions.Manager the service uses.
type TransactionAPI interface {
	Create(ctx context.Context, req *transactions.OrderRequest) (*transactions.Transaction, error)
	Get(ctx context.Context, orderID string) (*transactions.Transaction, error)
	Refund(ctx context.Context, tx *transactions.Transaction, amount money.Money, description string) (*transactions.RefundResult, error)
}

// StatusListener is called for every notification the service accepts.
type StatusListener func(ctx context.Context, tx *transactions.Transaction)

// OrderService wraps order operations with business spans, logs and metrics.
type OrderService struct {
	tracer      trace.Tracer
	orders      TransactionAPI
	instruments *monitoring.Instruments

	mu        sync.RWMutex
	listeners []StatusListener
}

// NewOrderService creates a new order service
func NewOrderService(tracer trace.Tracer, orders TransactionAPI, instruments *monitoring.Instruments) *OrderService {
	return &OrderService{
		tracer:      tracer,
		orders:      orders,
		instruments: instruments,
	}
}

// OnStatusChange registers fn for accepted notifications.
func (s *OrderService) OnStatusChange(fn StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// CreateOrder registers an order with MultiSafepay.
func (s *OrderService) CreateOrder(ctx context.Context, req *transactions.OrderRequest) (*transactions.Transaction, error) {
	if req == nil {
		return nil, transactions.ErrMissingOrder
	}

	ctx, span := s.tracer.Start(ctx, "create_order")
	defer span.End()

	span.SetAttributes(
		attribute.String("order.id", req.OrderID),
		attribute.String("order.type", string(req.Type)),
		attribute.String("order.gateway", req.GatewayCode),
		attribute.Int64("order.amount", req.Money.Amount),
		attribute.String("order.currency", req.Money.Currency),
	)

	logger := logging.WithTraceContext(span)
	logger.Info("Creating order",
		zap.String("order_id", req.OrderID),
		zap.String("gateway", req.GatewayCode),
		zap.String("amount", req.Money.String()),
	)

	tx, err := s.orders.Create(ctx, req)
	if err != nil {
		logger.Error("Order creation failed",
			zap.Error(err),
			zap.String("order_id", req.OrderID),
			zap.String("gateway", req.GatewayCode),
		)
		s.countOrder(ctx, "create", req.GatewayCode, "failed")
		span.SetAttributes(attribute.String("order.status", "failed"))
		return nil, err
	}

	s.countOrder(ctx, "create", req.GatewayCode, "success")
	if s.instruments != nil {
		amount, _ := req.Money.Decimal().Float64()
		s.instruments.OrderAmount.Record(ctx, amount,
			metric.WithAttributes(attribute.String("currency", req.Money.Currency)),
		)
	}

	span.SetAttributes(
		attribute.String("order.status", "created"),
		attribute.String("order.payment_url", tx.PaymentURL),
	)

	return tx, nil
}

// GetOrder fetches the current state of an order.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*transactions.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "get_order")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID))

	tx, err := s.orders.Get(ctx, orderID)
	if err != nil {
		logging.WithTraceContext(span).Error("Order lookup failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		s.countOrder(ctx, "get", "", "failed")
		return nil, err
	}

	s.countOrder(ctx, "get", "", "success")
	span.SetAttributes(attribute.String("order.status", string(tx.Status)))
	return tx, nil
}

// RefundOrder refunds amount of an existing order.
func (s *OrderService) RefundOrder(ctx context.Context, orderID string, amount money.Money, description string) (*transactions.RefundResult, error) {
	ctx, span := s.tracer.Start(ctx, "refund_order")
	defer span.End()

	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.Int64("refund.amount", amount.Amount),
		attribute.String("refund.currency", amount.Currency),
	)

	logger := logging.WithTraceContext(span)
	logger.Info("Refunding order",
		zap.String("order_id", orderID),
		zap.String("amount", amount.String()),
	)

	result, err := s.orders.Refund(ctx, &transactions.Transaction{OrderID: api.FlexString(orderID)}, amount, description)
	if err != nil {
		logger.Error("Refund failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		s.countOrder(ctx, "refund", "", "failed")
		return nil, err
	}

	s.countOrder(ctx, "refund", "", "success")
	span.SetAttributes(attribute.String("refund.id", result.RefundID.String()))
	return result, nil
}

// HandleNotification records a status change reported by MultiSafepay and
// passes it to the registered listeners. kind is "post" or "get".
func (s *OrderService) HandleNotification(ctx context.Context, tx *transactions.Transaction, kind string) {
	ctx, span := s.tracer.Start(ctx, "handle_notification")
	defer span.End()

	span.SetAttributes(
		attribute.String("order.id", tx.OrderID.String()),
		attribute.String("order.status", string(tx.Status)),
		attribute.String("notification.kind", kind),
	)

	logging.WithTraceContext(span).Info("Order status changed",
		zap.String("order_id", tx.OrderID.String()),
		zap.String("transaction_id", tx.TransactionID.String()),
		zap.String("status", string(tx.Status)),
		zap.String("kind", kind),
	)

	if s.instruments != nil {
		s.instruments.Notifications.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("kind", kind),
				attribute.String("status", string(tx.Status)),
			),
		)
	}

	s.mu.RLock()
	listeners := append([]StatusListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(ctx, tx)
	}
}

func (s *OrderService) countOrder(ctx context.Context, operation, gateway, status string) {
	if s.instruments == nil {
		return
	}
	s.instruments.Orders.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("gateway", gateway),
			attribute.String("status", status),
		),
	)
}
