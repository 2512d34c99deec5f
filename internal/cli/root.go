package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	cfgFile string
	envFile string
	v       *viper.Viper
}

// NewRootCommand builds the coffee-shop command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{v: newViper()}

	root := &cobra.Command{
		Use:   "coffee-shop",
		Short: "Coffee shop drinks API",
		Long: `Coffee shop serves the drinks menu over HTTP. Every drinks endpoint
requires a bearer token from the configured issuer carrying the matching
permission.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.cfgFile != "" {
				opts.v.SetConfigFile(opts.cfgFile)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	bindFlags(root, opts.v)

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newSeedCommand(opts))

	return root
}

func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
