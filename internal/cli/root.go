// Package cli holds the freight-exchange command tree.
package cli

import (
	"fmt"

	"freight-exchange/internal/config"
	"freight-exchange/utils"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "freight-exchange",
		Short: "Freight exchange negotiation server",
		Long: `Freight exchange: shippers post loads, carriers bid on them, and accepted
bids are negotiated into contracts. Every change is pushed live to connected
clients over websockets.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"path to a YAML config file (default $"+config.EnvConfigPath+")")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// Execute runs the command tree and returns its error
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the configuration and applies the log level
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := utils.ConfigureLogger(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
