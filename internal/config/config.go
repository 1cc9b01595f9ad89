// Package config loads server configuration from an optional YAML file,
// environment variables, and command line flags, in that order of
// precedence (later sources win).
package config

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix namespaces the environment variables the loader reads.
// HEROGAME_AUTH__SIGNING_KEY maps to auth.signing_key.
const EnvPrefix = "HEROGAME_"

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
}

// ServerConfig holds the HTTP listener options.
type ServerConfig struct {
	Address string `koanf:"address"`
}

// DatabaseConfig holds the SQLite options.
type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

// AuthConfig holds the credential and session token options.
type AuthConfig struct {
	// SigningKey is the shared HS256 secret. It has no default; the server
	// refuses to start without one.
	SigningKey string `koanf:"signing_key"`
	// TokenExpiration is the session token lifetime in hours.
	TokenExpiration int    `koanf:"token_expiration"`
	Issuer          string `koanf:"issuer"`
}

// Default returns the configuration baseline before any source is applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":3000",
		},
		Database: DatabaseConfig{
			DSN: "file:herogame.db?cache=shared&mode=rwc",
		},
		Auth: AuthConfig{
			TokenExpiration: 7 * 24,
			Issuer:          "herogame",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, the
// environment, and flags. A missing file is only an error when its path was
// given explicitly.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load config file").
					WithMetadata(map[string]any{"path": path})
			}
			return nil, errors.New("config file not found", errors.CategoryOperation).
				WithMetadata(map[string]any{"path": path})
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate will run validation rules.
func (c *Config) Validate() error {
	err := validation.Errors{
		"server.address":        validation.Validate(c.Server.Address, validation.Required),
		"database.dsn":          validation.Validate(c.Database.DSN, validation.Required),
		"auth.signing_key":      validation.Validate(c.Auth.SigningKey, validation.Required, validation.Length(16, 0)),
		"auth.token_expiration": validation.Validate(c.Auth.TokenExpiration, validation.Required, validation.Min(1)),
	}.Filter()
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid configuration").
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

// GetSigningKey implements the auth options interface.
func (c *Config) GetSigningKey() string {
	return c.Auth.SigningKey
}

// GetTokenExpiration implements the auth options interface.
func (c *Config) GetTokenExpiration() int {
	return c.Auth.TokenExpiration
}

// GetIssuer implements the auth options interface.
func (c *Config) GetIssuer() string {
	return c.Auth.Issuer
}
