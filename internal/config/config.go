package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Payment  PaymentConfig
	Ledger   LedgerConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	RealtimeLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	JWTTTL             time.Duration
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type PaymentConfig struct {
	// CallbackSecret signs PG callbacks. Empty disables signature checks.
	CallbackSecret string
	MinAmount      int64
}

type LedgerConfig struct {
	RefundCreditOnApproval bool
}

type CatalogConfig struct {
	CacheTTL time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate fails when production runs without the secrets that sign tokens
// and PG callbacks. Outside production both may be empty.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	var missing []string
	if c.App.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Payment.CallbackSecret == "" {
		missing = append(missing, "PAYMENT_CALLBACK_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s must be set in production", strings.Join(missing, ", "))
	}
	return nil
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RealtimeLogPath:    getEnv("REALTIME_LOG_FILE_PATH", "logs/realtime.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			JWTTTL:             time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AdOrder"),
		},
		Payment: PaymentConfig{
			CallbackSecret: getEnv("PAYMENT_CALLBACK_SECRET", ""),
			MinAmount:      int64(getEnvAsInt("PAYMENT_MIN_AMOUNT", 1000)),
		},
		Ledger: LedgerConfig{
			RefundCreditOnApproval: getEnvAsBool("REFUND_CREDIT_ON_APPROVAL", true),
		},
		Catalog: CatalogConfig{
			CacheTTL: time.Duration(getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
