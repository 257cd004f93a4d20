package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"multisafepay-sdk/api"
	"multisafepay-sdk/money"
	"multisafepay-sdk/transactions"
)

func (a *app) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create, inspect and refund orders",
	}

	cmd.AddCommand(a.orderCreateCmd())
	cmd.AddCommand(a.orderGetCmd())
	cmd.AddCommand(a.orderRefundCmd())

	return cmd
}

type orderFlags struct {
	orderID         string
	orderType       string
	amount          string
	currency        string
	gateway         string
	issuer          string
	description     string
	redirectURL     string
	cancelURL       string
	notificationURL string
}

func (f orderFlags) request() (*transactions.OrderRequest, error) {
	amount, err := money.Parse(f.amount, f.currency)
	if err != nil {
		return nil, err
	}

	orderID := f.orderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	order := &transactions.OrderRequest{
		Type:        transactions.OrderType(f.orderType),
		OrderID:     orderID,
		Money:       amount,
		GatewayCode: f.gateway,
		Description: f.description,
	}
	if f.issuer != "" {
		order.GatewayInfo = transactions.Ideal{IssuerID: f.issuer}
	}
	if f.redirectURL != "" || f.cancelURL != "" || f.notificationURL != "" {
		order.PaymentOptions = &transactions.PaymentOptions{
			NotificationURL: f.notificationURL,
			RedirectURL:     f.redirectURL,
			CancelURL:       f.cancelURL,
			CloseWindow:     true,
		}
	}
	return order, nil
}

func (a *app) orderCreateCmd() *cobra.Command {
	var f orderFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order and print its payment link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := f.request()
			if err != nil {
				return err
			}
			s, err := a.sdk()
			if err != nil {
				return err
			}
			tx, err := s.Transactions().Create(cmd.Context(), order)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.output, tx)
		},
	}

	cmd.Flags().StringVar(&f.orderID, "order-id", "", "Merchant order id (default: random uuid)")
	cmd.Flags().StringVarP(&f.orderType, "type", "t", string(transactions.TypeRedirect), "Order type (redirect, direct, paymentlink)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount in major units, e.g. 10.95")
	cmd.Flags().StringVar(&f.currency, "currency", "EUR", "ISO 4217 currency code")
	cmd.Flags().StringVarP(&f.gateway, "gateway", "g", "", "Gateway code, e.g. IDEAL")
	cmd.Flags().StringVar(&f.issuer, "issuer", "", "iDEAL issuer id")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Order description")
	cmd.Flags().StringVar(&f.redirectURL, "redirect-url", "", "URL the customer returns to after paying")
	cmd.Flags().StringVar(&f.cancelURL, "cancel-url", "", "URL the customer returns to after cancelling")
	cmd.Flags().StringVar(&f.notificationURL, "notification-url", "", "Webhook URL for status changes")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (a *app) orderGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [order-id]",
		Short: "Show the current state of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sdk()
			if err != nil {
				return err
			}
			tx, err := s.Transactions().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.output, tx)
		},
	}
}

func (a *app) orderRefundCmd() *cobra.Command {
	var amount, currency, description string

	cmd := &cobra.Command{
		Use:   "refund [order-id]",
		Short: "Refund (part of) an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := money.Parse(amount, currency)
			if err != nil {
				return err
			}
			s, err := a.sdk()
			if err != nil {
				return err
			}
			tx := &transactions.Transaction{OrderID: api.FlexString(args[0])}
			result, err := s.Transactions().Refund(cmd.Context(), tx, m, description)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.output, result)
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount in major units")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "ISO 4217 currency code")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Refund description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
