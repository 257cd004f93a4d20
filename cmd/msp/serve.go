package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"multisafepay-sdk/client"
	"multisafepay-sdk/handlers"
	"multisafepay-sdk/logging"
	"multisafepay-sdk/monitoring"
	"multisafepay-sdk/notification"
	"multisafepay-sdk/sdk"
	"multisafepay-sdk/service"
	"multisafepay-sdk/transactions"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Receive payment notifications over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize structured logging
	if err := logging.InitLogger(cfg.ServiceName, cfg.OTELEndpoint); err != nil {
		return err
	}
	defer logging.Sync()
	defer func() {
		if err := logging.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry
	tp, tracer, err := monitoring.InitTracer(cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	mp, instruments, err := monitoring.InitMeter(cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	opts := append(cfg.ClientOptions(logging.GetLogger()),
		client.WithTracer(tracer),
		client.WithInstruments(instruments),
	)
	s, err := sdk.New(cfg.APIKey, cfg.Production, opts...)
	if err != nil {
		return err
	}

	orderService := service.NewOrderService(tracer, s.Transactions(), instruments)
	orderService.OnStatusChange(func(ctx context.Context, tx *transactions.Transaction) {
		if tx.IsPaid() {
			logging.Info("Order paid",
				zap.String("order_id", tx.OrderID.String()),
				zap.String("amount", tx.Money().String()),
			)
		}
	})

	handler := handlers.NewNotificationHandler(orderService, notification.NewVerifier(cfg.APIKey, cfg.NotificationMaxAge))

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(cfg.ServiceName, handler, instruments),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Notification service starting",
			zap.String("port", cfg.Port),
			zap.Bool("production", cfg.Production),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info("Notification service stopped")
	return nil
}
