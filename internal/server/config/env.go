package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables understood by the server.
// Unset variables stay nil and do not override earlier sources.
type EnvConfig struct {
	Host                     *string  `env:"HOST"`
	Port                     *string  `env:"PORT"`
	DatabaseURL              *string  `env:"DATABASE_URL"`
	DatabaseName             *string  `env:"DATABASE_NAME"`
	SecretKey                *string  `env:"SECRET_KEY"`
	AccessTokenExpireMinutes *int     `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	BcryptCost               *int     `env:"BCRYPT_COST"`
	CORSAllowedOrigins       []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel                 *string  `env:"LOG_LEVEL"`
	Environment              *string  `env:"APP_ENV"`
}

// parseEnv overlays environment variables onto config. A nil environ reads
// the process environment.
func parseEnv(config *Config, environ map[string]string) error {
	var e EnvConfig

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setPtr(&config.Host, e.Host)
	setPtr(&config.Port, e.Port)
	setPtr(&config.DatabaseURL, e.DatabaseURL)
	setPtr(&config.DatabaseName, e.DatabaseName)
	setPtr(&config.SecretKey, e.SecretKey)
	setPtr(&config.BcryptCost, e.BcryptCost)
	setPtr(&config.LogLevel, e.LogLevel)
	setPtr(&config.Environment, e.Environment)
	if e.AccessTokenExpireMinutes != nil {
		config.AccessTokenValidityDuration = time.Duration(*e.AccessTokenExpireMinutes) * time.Minute
	}
	if len(e.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = e.CORSAllowedOrigins
	}

	return nil
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
