package cli

import (
	"freight-exchange/internal/config"
	"freight-exchange/utils"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Create the exchange tables in the configured SQLite or PostgreSQL store.
The schema is idempotent; running it twice is harmless. The in-memory
store has nothing to migrate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if cfg.Store.Driver == config.DriverMemory {
				utils.Info("Nothing to migrate for the memory store", nil)
				return nil
			}

			store, closeStore, err := openStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := migrate(cmd.Context(), store); err != nil {
				return err
			}
			utils.Info("Schema applied", map[string]any{"driver": cfg.Store.Driver})
			return nil
		},
	}
}
