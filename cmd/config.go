package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel    string
	LogEncoding string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MarginCacheTTL time.Duration

	KafkaBrokers            []string
	KafkaNotificationsTopic string

	MediaRoot     string
	MediaBaseURL  string
	MediaPath     string
	MediaMaxBytes int64

	RelaySchedule         string
	RelayBatchSize        int
	MarginRefreshSchedule string

	ValidateRequests bool
	TracingEnabled   bool
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %q is not a valid port", c.HTTPPort))
	}
	if c.DBHost == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DBUser == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.MediaRoot == "" {
		errs = append(errs, errors.New("MEDIA_ROOT is required"))
	}
	if c.RelayBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("RELAY_BATCH_SIZE must be positive, got %d", c.RelayBatchSize))
	}
	if c.KafkaNotificationsTopic == "" && len(c.KafkaBrokers) > 0 {
		errs = append(errs, errors.New("KAFKA_NOTIFICATIONS_TOPIC is required when KAFKA_BROKERS is set"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the environment, after an optional .env file in the
// working directory. Variables already set take precedence over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var parseErrs []error
	config := Config{
		HTTPPort:    env("HTTP_PORT", "8080"),
		Environment: env("APP_ENV", "development"),

		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", "mfgorders"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		LogLevel:    env("LOG_LEVEL", "info"),
		LogEncoding: env("LOG_ENCODING", "json"),

		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPassword: env("REDIS_PASSWORD", ""),

		KafkaBrokers:            list(env("KAFKA_BROKERS", "")),
		KafkaNotificationsTopic: env("KAFKA_NOTIFICATIONS_TOPIC", "mfgorders.notifications"),

		MediaRoot:    env("MEDIA_ROOT", "./media"),
		MediaBaseURL: env("MEDIA_BASE_URL", "/media"),
		MediaPath:    env("MEDIA_PATH", "/media"),

		RelaySchedule:         env("RELAY_SCHEDULE", "*/10 * * * * *"),
		MarginRefreshSchedule: env("MARGIN_REFRESH_SCHEDULE", "0 */5 * * * *"),
	}

	var err error
	if config.RedisDB, err = strconv.Atoi(env("REDIS_DB", "0")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("REDIS_DB: %w", err))
	}
	if config.MarginCacheTTL, err = time.ParseDuration(env("MARGIN_CACHE_TTL", "5m")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("MARGIN_CACHE_TTL: %w", err))
	}
	if config.MediaMaxBytes, err = strconv.ParseInt(env("MEDIA_MAX_BYTES", "26214400"), 10, 64); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("MEDIA_MAX_BYTES: %w", err))
	}
	if config.RelayBatchSize, err = strconv.Atoi(env("RELAY_BATCH_SIZE", "100")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("RELAY_BATCH_SIZE: %w", err))
	}
	if config.ValidateRequests, err = strconv.ParseBool(env("VALIDATE_REQUESTS", "true")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("VALIDATE_REQUESTS: %w", err))
	}
	if config.TracingEnabled, err = strconv.ParseBool(env("TRACING_ENABLED", "false")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("TRACING_ENABLED: %w", err))
	}

	if len(parseErrs) > 0 {
		return Config{}, errors.Join(parseErrs...)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
