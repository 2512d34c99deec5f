package app

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	CORS   CORSConfig   `mapstructure:"cors"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// AuthConfig describes the token issuer. Issuer and JWKSURL default to the
// well-known locations under Domain.
type AuthConfig struct {
	Domain       string        `mapstructure:"domain"`
	Audience     string        `mapstructure:"audience"`
	Algorithms   []string      `mapstructure:"algorithms"`
	Issuer       string        `mapstructure:"issuer"`
	JWKSURL      string        `mapstructure:"jwks_url"`
	JWKSCacheTTL time.Duration `mapstructure:"jwks_cache_ttl"`
	JWKSTimeout  time.Duration `mapstructure:"jwks_timeout"`
	Leeway       time.Duration `mapstructure:"leeway"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type HTTPConfig struct {
	InternalCIDRs []string `mapstructure:"internal_cidrs"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c Config) Validate() error {
	var errs []error
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db.dsn is required"))
	}
	if c.Auth.Audience == "" {
		errs = append(errs, errors.New("auth.audience is required"))
	}
	if c.Auth.Domain == "" && (c.Auth.Issuer == "" || c.Auth.JWKSURL == "") {
		errs = append(errs, errors.New("auth.domain is required unless auth.issuer and auth.jwks_url are both set"))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	return errors.Join(errs...)
}
