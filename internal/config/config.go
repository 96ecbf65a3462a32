package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Auth      AuthConfig
	Payment   PaymentConfig
	Scheduler SchedulerConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port                    string
	BaseURL                 string
	ClientURL               string
	Environment             string
	LogFilePath             string
	NotificationLogFilePath string
	CorsAllowedOrigins      string
	NatsURL                 string
	RedisURL                string
	Timezone                string
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

type AuthConfig struct {
	JwtSecret          string
	TokenTTL           time.Duration
	RateLimitPerMinute int
}

type PaymentConfig struct {
	MidtransServerKey    string
	MidtransIsProduction bool
}

type SchedulerConfig struct {
	SubscriptionSweepCron string
}

// TracingConfig controls the OTLP exporter. Tracing is off unless Enabled.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                    getEnv("APP_PORT", "3000"),
			BaseURL:                 getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:               getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:             getEnv("GO_ENV", "development"),
			LogFilePath:             getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotificationLogFilePath: getEnv("NOTIFICATION_LOG_FILE_PATH", "logs/notification.log"),
			CorsAllowedOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:                 getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:                getEnv("REDIS_URL", "redis://localhost:6379"),
			Timezone:                getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Milk Marketplace"),
		},
		Auth: AuthConfig{
			JwtSecret:          getEnv("JWT_SECRET", ""),
			TokenTTL:           time.Duration(getEnvAsInt("JWT_EXPIRE_HOURS", 720)) * time.Hour,
			RateLimitPerMinute: getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		},
		Payment: PaymentConfig{
			MidtransServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransIsProduction: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
		},
		Scheduler: SchedulerConfig{
			SubscriptionSweepCron: getEnv("SUBSCRIPTION_SWEEP_CRON", "*/30 * * * *"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "milk-platform-be"),
		},
	}
}

// Location resolves the business time zone, falling back to the process zone.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
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
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}
