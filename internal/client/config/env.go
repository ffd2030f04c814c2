package config

import (
	"github.com/caarlos0/env/v11"
)

type EnvConfig struct {
	ServerURL string `env:"BREWHAVEN_SERVER_URL"`
}

// parseEnv overlays values from environ, or from the process environment when
// environ is nil.
func parseEnv(cfg *Config, environ map[string]string) error {
	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: environ}); err != nil {
		return err
	}
	if ec.ServerURL != "" {
		cfg.ServerURL = ec.ServerURL
	}
	return nil
}
