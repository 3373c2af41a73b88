package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	Reservation ReservationConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ReservationConfig tunes the reservation kernel: how often transient
// store failures are retried, how long advisory caches live and how
// often the counter reconciler runs.
type ReservationConfig struct {
	MaxRetries        int
	RetryBackoff      time.Duration
	CacheTTL          time.Duration
	ReconcileInterval time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	retryBackoff, err := time.ParseDuration(viper.GetString("RESERVATION_RETRY_BACKOFF"))
	if err != nil {
		retryBackoff = 50 * time.Millisecond
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("RESERVATION_CACHE_TTL"))
	if err != nil {
		cacheTTL = 30 * time.Second
	}

	reconcileInterval, err := time.ParseDuration(viper.GetString("RESERVATION_RECONCILE_INTERVAL"))
	if err != nil {
		reconcileInterval = 10 * time.Minute
	}

	maxRetries := viper.GetInt("RESERVATION_MAX_RETRIES")
	if maxRetries <= 0 {
		maxRetries = 3
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Reservation: ReservationConfig{
			MaxRetries:        maxRetries,
			RetryBackoff:      retryBackoff,
			CacheTTL:          cacheTTL,
			ReconcileInterval: reconcileInterval,
		},
	}

	return config, nil
}
