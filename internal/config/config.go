package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	DBDSN   string `envconfig:"DB_DSN" default:"shopbook.db"`
	LogFile string `envconfig:"LOG_FILE" default:""`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process config: %w", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TOKEN_TTL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TokenTTL)
	return cfg, nil
}
