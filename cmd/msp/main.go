package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"multisafepay-sdk/config"
	"multisafepay-sdk/logging"
	"multisafepay-sdk/sdk"
)

var Version = "dev"

type app struct {
	configPath string
	output     string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "msp",
		Short:         "MultiSafepay API client",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "json", "Output format (json, yaml)")

	rootCmd.AddCommand(a.orderCmd())
	rootCmd.AddCommand(a.gatewaysCmd())
	rootCmd.AddCommand(a.issuersCmd())
	rootCmd.AddCommand(a.serveCmd())

	return rootCmd
}

// sdk builds an SDK from the loaded configuration.
func (a *app) sdk() (*sdk.SDK, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return sdk.New(a.cfg.APIKey, a.cfg.Production, a.cfg.ClientOptions(logging.GetLogger())...)
}
