package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "CustodyVault"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultOwnerAccount    = "vault-owner"
	defaultAccessTTL       = 15 * time.Minute
	defaultRefreshTTL      = 7 * 24 * time.Hour
	defaultShutdownDelay   = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultWithdrawalDelay = 24 * time.Hour
	defaultExecutionWindow = time.Hour
	defaultDayLength       = 24 * time.Hour
	defaultDailyLimitCoins = 5
)

// Config captures application runtime configuration loaded from
// environment variables.
type Config struct {
	AppName     string
	AppEnv      string
	Port        string
	LogLevel    string
	DatabaseURL string
	RedisURL    string

	AuthSecret      string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OwnerAccount    string
	WithdrawalDelay time.Duration
	ExecutionWindow time.Duration
	DailyLimitCoins int64
	DayLength       time.Duration

	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
}

// Load reads configuration values from the environment. Postgres, Redis
// and a real auth secret are mandatory outside development; in development
// the service falls back to in-memory state and a throwaway secret.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		AuthSecret:      os.Getenv("AUTH_SECRET"),
		OwnerAccount:    getEnv("OWNER_ACCOUNT", defaultOwnerAccount),
		DailyLimitCoins: defaultDailyLimitCoins,
	}

	var err error
	if cfg.AccessTokenTTL, err = durationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = durationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL); err != nil {
		return Config{}, err
	}
	if cfg.WithdrawalDelay, err = durationEnv("WITHDRAWAL_DELAY", defaultWithdrawalDelay); err != nil {
		return Config{}, err
	}
	if cfg.ExecutionWindow, err = durationEnv("EXECUTION_WINDOW", defaultExecutionWindow); err != nil {
		return Config{}, err
	}
	if cfg.DayLength, err = durationEnv("DAY_LENGTH", defaultDayLength); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", defaultShutdownDelay); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", defaultIdempotencyTTL); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("DAILY_LIMIT_COINS"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("invalid DAILY_LIMIT_COINS: %q", v)
		}
		cfg.DailyLimitCoins = limit
	}

	if cfg.Dev() {
		if cfg.AuthSecret == "" {
			cfg.AuthSecret = "dev-secret-do-not-deploy"
		}
	} else {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.AuthSecret == "" {
			return Config{}, fmt.Errorf("AUTH_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	cfg.RefreshSecret = getEnv("REFRESH_SECRET", cfg.AuthSecret+".refresh")

	return cfg, nil
}

// Dev reports whether the service runs in a development environment.
func (c Config) Dev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// durationEnv reads <key>_SECONDS as an integer or <key> as a Go duration
// string, preferring the seconds form when both are set.
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(key + "_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s_SECONDS: %w", key, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return d, nil
	}
	return fallback, nil
}
