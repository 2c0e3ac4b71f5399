package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/shiftledger/attendance-backend-go/internal/pkg/validator"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
	Export     ExportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AttendanceConfig carries the lifecycle rules: the daily late cutoff and
// the time zone calendar days are computed in.
type AttendanceConfig struct {
	// Cutoff is the offset from local midnight after which a check-in is
	// classified late. Parsed from ATTENDANCE_CUTOFF ("HH:MM").
	Cutoff time.Duration
	// Location is the server-local zone used for calendar-day bucketing.
	Location *time.Location
}

type ExportConfig struct {
	// Dir is where the worker writes finished CSV exports.
	Dir string
	// QueueBackend is "redis" or "memory".
	QueueBackend string
	QueueKey     string
}

func Load() (*Config, error) {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	cutoffStr := getEnv("ATTENDANCE_CUTOFF", "09:00")
	cutoff, ok := validator.IsValidCutoff(cutoffStr)
	if !ok {
		return nil, fmt.Errorf("invalid ATTENDANCE_CUTOFF %q: must be HH:MM", cutoffStr)
	}

	loc := time.Local
	if tz := getEnv("ATTENDANCE_TIMEZONE", ""); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
		}
	}

	config.Attendance = AttendanceConfig{
		Cutoff:   cutoff,
		Location: loc,
	}

	config.Export = ExportConfig{
		Dir:          getEnv("EXPORT_DIR", "./exports"),
		QueueBackend: getEnv("EXPORT_QUEUE_BACKEND", "redis"),
		QueueKey:     getEnv("EXPORT_QUEUE_KEY", "attendance:exports"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
