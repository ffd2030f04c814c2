package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/brewhaven/internal/flagx"
	"github.com/dmitrijs2005/brewhaven/internal/timex"
)

// JsonConfig is the on-disk JSON shape. Durations accept "24h" or integer
// nanoseconds. Zero values leave the current setting untouched.
type JsonConfig struct {
	Host                        string         `json:"host"`
	Port                        string         `json:"port"`
	DatabaseURL                 string         `json:"database_url"`
	DatabaseName                string         `json:"database_name"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	LogLevel                    string         `json:"log_level"`
	Environment                 string         `json:"environment"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
}

// parseJSON loads the file named by -c/-config, if any, into config.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&config.Host, c.Host)
	setString(&config.Port, c.Port)
	setString(&config.DatabaseURL, c.DatabaseURL)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.Environment, c.Environment)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
