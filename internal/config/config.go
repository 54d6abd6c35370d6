// Package config загружает конфигурацию сервера из окружения и необязательного .env файла через Viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultEnvFile файл, который читается, если путь не задан явно
const DefaultEnvFile = ".env"

// Минимальная стоимость bcrypt для паролей пользователей
const minBcryptCost = 12

// Config конфигурация сервера
type Config struct {
	// HTTPAddr адрес HTTP сервера (например :8080)
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DBDriver "sqlite" или "postgres"
	DBDriver string `mapstructure:"DB_DRIVER"`
	// DatabaseURL путь к файлу SQLite или Postgres DSN
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// OTPIssuer issuer в otpauth URI
	OTPIssuer string `mapstructure:"OTP_ISSUER"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	// BcryptCost стоимость bcrypt, от 12 до 31
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	ChallengeTTL    time.Duration `mapstructure:"CHALLENGE_TTL"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	CleanupInterval time.Duration `mapstructure:"CLEANUP_INTERVAL"` // 0 отключает очистку
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load читает envFile (если есть), затем окружение. Переменные окружения важнее файла.
// Отсутствие файла по умолчанию не ошибка, явно указанный файл обязан существовать
func Load(envFile string) (*Config, error) {
	v := viper.New()

	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "hearthabitz.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("BCRYPT_COST", minBcryptCost)
	v.SetDefault("OTP_ISSUER", "Roohi")
	v.SetDefault("CHALLENGE_TTL", 10*time.Minute)
	v.SetDefault("SESSION_TTL", 30*24*time.Hour)
	v.SetDefault("CLEANUP_INTERVAL", 5*time.Minute)
	v.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("config: DATABASE_URL must be set")
	}

	if c.BcryptCost == 0 {
		c.BcryptCost = minBcryptCost
	}
	if c.BcryptCost < minBcryptCost || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and 31", minBcryptCost)
	}

	if strings.TrimSpace(c.OTPIssuer) == "" {
		return errors.New("config: OTP_ISSUER must be set")
	}
	if strings.Contains(c.OTPIssuer, ":") {
		return errors.New("config: OTP_ISSUER must not contain ':'")
	}

	if c.ChallengeTTL <= 0 {
		return errors.New("config: CHALLENGE_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.CleanupInterval < 0 || c.RequestTimeout < 0 || c.ShutdownTimeout < 0 {
		return errors.New("config: intervals and timeouts must not be negative")
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("config: LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}

	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}

// SlogLevel разбирает LOG_LEVEL (debug, info, warn, error)
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
