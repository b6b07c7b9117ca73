// Package config loads server configuration from the environment, with an
// optional YAML file pointed to by CONFIG_PATH.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string `yaml:"env" env:"ENV" env-default:"local"`
	Addr      string `yaml:"addr" env:"ADDR" env-default:":8080"`
	DBPath    string `yaml:"db_path" env:"DB_PATH" env-default:"inventar.sqlite3"`
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-description:"token signing key, auto-generated if empty"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from CONFIG_PATH (if set) and the environment.
// Environment variables override file values.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return &cfg, nil
}
