package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Flarenzy/coffee-shop/internal/app"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "COFFEESHOP"

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/coffee-shop/")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("db.dsn", "")

	v.SetDefault("auth.domain", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("auth.algorithms", []string{"RS256"})
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.jwks_url", "")
	v.SetDefault("auth.jwks_cache_ttl", "0s")
	v.SetDefault("auth.jwks_timeout", "10s")
	v.SetDefault("auth.leeway", "0s")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("http.internal_cidrs", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.IntP("port", "p", 8080, "Port to listen on")
	flags.String("dsn", "", "PostgreSQL connection string")
	flags.String("auth-domain", "", "Token issuer domain, e.g. tenant.auth0.com")
	flags.String("auth-audience", "", "Expected token audience")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")

	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("db.dsn", flags.Lookup("dsn"))
	_ = v.BindPFlag("auth.domain", flags.Lookup("auth-domain"))
	_ = v.BindPFlag("auth.audience", flags.Lookup("auth-audience"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
}

// loadConfig reads .env, the optional config file and the environment, in
// increasing order of precedence after flags.
func loadConfig(v *viper.Viper, envFile string) (app.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return app.Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return app.Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg app.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return app.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
