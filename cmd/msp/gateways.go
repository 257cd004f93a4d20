package main

import (
	"github.com/spf13/cobra"
)

func (a *app) gatewaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateways",
		Short: "Inspect the payment methods enabled on the account",
	}

	var coupons bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available gateways",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sdk()
			if err != nil {
				return err
			}
			list, err := s.Gateways().List(cmd.Context(), coupons)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.output, list)
		},
	}
	listCmd.Flags().BoolVar(&coupons, "coupons", false, "Include coupon gateways")

	getCmd := &cobra.Command{
		Use:   "get [code]",
		Short: "Show one gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sdk()
			if err != nil {
				return err
			}
			gw, err := s.Gateways().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.output, gw)
		},
	}

	cmd.AddCommand(listCmd, getCmd)
	return cmd
}

func (a *app) issuersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issuers [gateway]",
		Short: "List the issuers of a gateway, e.g. IDEAL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sdk()
			if err != nil {
				return err
			}
			issuers, err := s.Issuers().List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.output, issuers)
		},
	}
}
