package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Admin
	AdminPhone string `env:"ADMIN_PHONE,required"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database.xlsx"`
	SessionPath  string `env:"SESSION_PATH" envDefault:"session-data"`

	// Server
	Port int `env:"PORT" envDefault:"3000"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// Local development reads a .env file; in production the variables
	// come from the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(phone string) bool {
	return phone == c.AdminPhone
}
