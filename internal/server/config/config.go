// Package config handles configuration for the account server: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
)

// InsecureDefaultSecret is the development signing secret. It is rejected
// when Environment is "production".
const InsecureDefaultSecret = "dev-secret-key-change"

const EnvironmentProduction = "production"

// Config holds runtime settings for the account server.
//
// Fields:
//   - Host / Port: HTTP bind address; Port comes from PORT (default 8000).
//   - DatabaseURL: store connection string; its scheme selects the backend.
//   - DatabaseName: MongoDB database name.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: access token lifetime (24h).
//   - BcryptCost: bcrypt work factor for new password hashes.
//   - CORSAllowedOrigins: "*" allows every origin.
type Config struct {
	Host                        string
	Port                        string
	DatabaseURL                 string
	DatabaseName                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	CORSAllowedOrigins          []string
	LogLevel                    string
	Environment                 string
	ShutdownTimeout             time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.Host = "0.0.0.0"
	c.Port = "8000"
	c.DatabaseURL = ""
	c.DatabaseName = "brewhaven"
	c.SecretKey = InsecureDefaultSecret
	c.AccessTokenValidityDuration = auth.DefaultTokenValidity
	c.BcryptCost = auth.DefaultBcryptCost
	c.CORSAllowedOrigins = []string{"*"}
	c.LogLevel = "info"
	c.Environment = "development"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file (-c/-config), the environment and finally
// command-line flags. args are the program arguments without the binary name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// UsesInsecureSecret reports whether the development secret is in use.
func (c *Config) UsesInsecureSecret() bool {
	return c.SecretKey == InsecureDefaultSecret
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must not be empty"))
	}
	if c.UsesInsecureSecret() && c.Environment == EnvironmentProduction {
		errs = append(errs, errors.New("default secret key is not allowed in production; set SECRET_KEY"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}

	return errors.Join(errs...)
}
