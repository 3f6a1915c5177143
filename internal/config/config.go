package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		ReadTimeout  string `yaml:"readTimeout"`
		WriteTimeout string `yaml:"writeTimeout"`
	} `yaml:"server"`
	Database struct {
		// memory keeps everything in-process; nothing survives a restart.
		Driver string `yaml:"driver" validate:"required,oneof=memory sqlite postgres"`
		DSN    string `yaml:"dsn" validate:"required_if=Driver postgres"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"gte=0"`
	} `yaml:"redis"`
	Auth struct {
		Secret     string `yaml:"secret" validate:"required,min=16"`
		Issuer     string `yaml:"issuer"`
		TokenTTL   string `yaml:"tokenTTL"`
		BcryptCost int    `yaml:"bcryptCost" validate:"omitempty,min=4,max=31"`
	} `yaml:"auth"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,required"`
	} `yaml:"cors"`
}

// Load reads YAML config from path, applies environment overrides and defaults,
// then validates the result.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Auth.Secret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "journey-quiz-service"
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
