package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Log         LogConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
}

type AppConfig struct {
	Port            string
	Env             string
	SeedDemoData    bool
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

// RedisConfig is optional. An empty Host keeps the service fully in-memory.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type IdempotencyConfig struct {
	TTL time.Duration
}

// LoadConfig reads .env from the working directory, falling back to the
// process environment when the file does not exist.
func LoadConfig() (*Config, error) {
	return Load(".env")
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_SEED_DEMO_DATA", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("APP_SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}

	idempotencyTTL, err := time.ParseDuration(v.GetString("IDEMPOTENCY_TTL"))
	if err != nil {
		idempotencyTTL = time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:            v.GetString("APP_PORT"),
			Env:             v.GetString("APP_ENV"),
			SeedDemoData:    v.GetBool("APP_SEED_DEMO_DATA"),
			ShutdownTimeout: shutdownTimeout,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Idempotency: IdempotencyConfig{
			TTL: idempotencyTTL,
		},
	}

	return config, nil
}
