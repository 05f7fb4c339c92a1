package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NatsURL       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	DefaultCurrency        string
	DefaultServiceRadiusKm float64
	MaxServiceRadiusKm     float64
	RequestTimeout         time.Duration

	OutboxRelaySchedule string
	OutboxBatchSize     int
	PositionTTL         time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Unset or malformed values fall back to their defaults.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err = godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	return Config{
		HTTPPort:   GetEnv("HTTP_PORT", "8080"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", ""),
		DBName:     GetEnv("DB_NAME", "marketplace"),
		DBSslMode:  GetEnv("DB_SSLMODE", "disable"),

		NatsURL:       GetEnv("NATS_URL", "nats://localhost:4222"),
		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		JWTSecret: GetEnv("JWT_SECRET", ""),

		DefaultCurrency:        GetEnv("DEFAULT_CURRENCY", "BDT"),
		DefaultServiceRadiusKm: GetEnvAsFloat("DEFAULT_SERVICE_RADIUS_KM", 50),
		MaxServiceRadiusKm:     GetEnvAsFloat("MAX_SERVICE_RADIUS_KM", 300),
		RequestTimeout:         GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),

		OutboxRelaySchedule: GetEnv("OUTBOX_RELAY_SCHEDULE", "*/2 * * * * *"),
		OutboxBatchSize:     GetEnvAsInt("OUTBOX_BATCH_SIZE", 100),
		PositionTTL:         GetEnvAsDuration("POSITION_TTL", 24*time.Hour),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "json"),
		LogFile:   GetEnv("LOG_FILE", ""),
	}, nil
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DefaultServiceRadiusKm <= 0 || c.DefaultServiceRadiusKm > c.MaxServiceRadiusKm {
		return fmt.Errorf("DEFAULT_SERVICE_RADIUS_KM must be in (0, %v]", c.MaxServiceRadiusKm)
	}
	return nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(GetEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go durations such as "10s" or "24h".
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
