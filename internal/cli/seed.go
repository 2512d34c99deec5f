package cli

import (
	"errors"

	"github.com/Flarenzy/coffee-shop/internal/app"
	"github.com/spf13/cobra"
)

func newSeedCommand(opts *options) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and insert the sample drink",
		Long: `Create the drinks table if needed and insert the sample "water" drink.

With --reset the drinks table is dropped first, discarding every drink.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.v, opts.envFile)
			if err != nil {
				return err
			}
			if cfg.DB.DSN == "" {
				return errors.New("db.dsn is required")
			}
			if err := app.Seed(cmd.Context(), cfg, reset); err != nil {
				return err
			}
			cmd.Println("seeded drinks")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Drop and recreate the drinks table")

	return cmd
}
