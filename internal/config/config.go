package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"qr-manager-go/pkg/logger"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	HTTPPort     string
	Env          string
	StoreBackend string
	Registry     RegistryConfig
	Reports      ReportsConfig
	Photos       PhotoConfig
	DB           DBConfig
}

type RegistryConfig struct {
	CodeLength      int
	CodeTTL         time.Duration
	PartitionPrefix string
	TimeZone        string
}

type ReportsConfig struct {
	HistoryLimit     int
	CountersCacheTTL time.Duration
}

type PhotoConfig struct {
	Dir     string
	BaseURL string
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		StoreBackend: getEnv("STORE_BACKEND", StoreBackendPostgres),
		Registry: RegistryConfig{
			CodeLength:      getEnvInt("REGISTRY_CODE_LENGTH", 6),
			CodeTTL:         getEnvDuration("REGISTRY_CODE_TTL", 24*time.Hour),
			PartitionPrefix: getEnv("REGISTRY_PARTITION_PREFIX", "Registros_"),
			TimeZone:        getEnv("REGISTRY_TIMEZONE", "America/Mexico_City"),
		},
		Reports: ReportsConfig{
			HistoryLimit:     getEnvInt("HISTORY_LIMIT", 5),
			CountersCacheTTL: getEnvDuration("COUNTERS_CACHE_TTL", 0),
		},
		Photos: PhotoConfig{
			Dir:     getEnv("PHOTO_DIR", "photos"),
			BaseURL: getEnv("PHOTO_BASE_URL", "/photos"),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "qr_manager"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
