package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration. The bind address itself comes from the serve
	// command's --http flag.
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Pricing configuration
	HourlyRate float64
	Currency   string

	// Parking lot configuration
	SpotKeyPrefix string

	// Session configuration
	SessionTTL        time.Duration
	AdminPasswordHash string

	// Archive configuration
	ArchiveSchedule string

	// Reporting configuration
	ReportLocation *time.Location

	// Mail configuration
	SenderName    string
	SenderAddress string

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	godotenv.Load()

	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Pricing
		HourlyRate: getEnvAsFloat("HOURLY_RATE", 10),
		Currency:   getEnv("CURRENCY", "MAD"),

		// Parking lot
		SpotKeyPrefix: getEnv("SPOT_KEY_PREFIX", "Place"),

		// Sessions
		SessionTTL:        getEnvAsDuration("SESSION_TTL", "24h"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		// Archiver
		ArchiveSchedule: getEnv("ARCHIVE_SCHEDULE", "@every 5m"),

		// Reporting
		ReportLocation: getEnvAsLocation("REPORT_TIMEZONE"),

		// Mail
		SenderName:    getEnv("MAIL_SENDER_NAME", "SmartPark"),
		SenderAddress: getEnv("MAIL_SENDER_ADDRESS", "noreply@smartpark.example"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsLocation resolves the reporting timezone. The dataset stores local
// wall-clock instants without a zone, so the day bucket must be derived in the
// lot's own timezone, not UTC.
func getEnvAsLocation(key string) *time.Location {
	name := getEnv(key, "Local")
	if name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid %s %q, falling back to local time: %v", key, name, err)
		return time.Local
	}
	return loc
}
