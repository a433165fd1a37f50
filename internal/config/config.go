package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the static process configuration. Runtime-tunable values
// (telegram credentials, thresholds) live in the settings table instead.
type Config struct {
	Port      string `envconfig:"PORT" default:"5000"`
	DBDriver  string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN     string `envconfig:"DATABASE_URL" default:"victoria.db"`
	JWTSecret string `envconfig:"JWT_SECRET"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
