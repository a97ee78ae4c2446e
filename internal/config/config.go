package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrUnknownDriver     = errors.New("unknown store driver")
	ErrUnknownIDStrategy = errors.New("unknown id strategy")
	ErrMissingSetting    = errors.New("missing required setting")
)

type Config struct {
	AppAddr         string        `mapstructure:"app_addr"`
	LogLevel        string        `mapstructure:"log_level"`
	StoreDriver     string        `mapstructure:"store_driver"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	DatabaseURL     string        `mapstructure:"database_url"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	IDStrategy      string        `mapstructure:"id_strategy"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("store_driver", "sqlite")
	v.SetDefault("sqlite_path", "inventory.db")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "15m")
	v.SetDefault("id_strategy", "uuid")
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("shutdown_timeout", "5s")
}

// Load reads an optional .env file, then environment variables and an optional
// config file named by CONFIG_FILE. Environment wins over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not load .env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "memory", "sqlite", "postgres", "redis":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StoreDriver)
	}

	switch c.IDStrategy {
	case "uuid", "timestamp":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIDStrategy, c.IDStrategy)
	}

	if c.StoreDriver == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL", ErrMissingSetting)
	}
	if c.StoreDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("%w: SQLITE_PATH", ErrMissingSetting)
	}
	if c.StoreDriver == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("%w: REDIS_ADDR", ErrMissingSetting)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET", ErrMissingSetting)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: TOKEN_TTL must be positive", ErrMissingSetting)
	}
	return nil
}
