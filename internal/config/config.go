package config

import "github.com/caarlos0/env/v10"

// Config centralizes service configuration.
type Config struct {
	HTTPPort      string  `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string  `env:"DATABASE_URL,required"`
	RedisAddr     string  `env:"REDIS_ADDR"`
	RedisPassword string  `env:"REDIS_PASSWORD"`
	RedisDB       int     `env:"REDIS_DB" envDefault:"0"`
	SessionTTLMin int     `env:"SESSION_TTL_MINUTES" envDefault:"1440"`
	DefaultRadius float64 `env:"DEFAULT_RADIUS_KM" envDefault:"100"`
	DataDir       string  `env:"DATA_DIR" envDefault:"data"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
