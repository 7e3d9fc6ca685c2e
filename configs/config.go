package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost string
	RedisPort string

	KafkaBrokers string
	KafkaTopic   string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Password assigned to users created through the admin endpoint.
	DefaultUserPass string

	// Bootstrap superuser, created at startup when missing.
	AdminUsername string
	AdminPassword string

	AutoMigrate bool
}

func LoadConfig() *Config {
	return &Config{
		AppPort:         getEnv("CHAT_APP_PORT", ":8080"),
		DBHost:          getEnv("CHAT_DB_HOST", "localhost"),
		DBPort:          getEnv("CHAT_DB_PORT", "5432"),
		DBUser:          getEnv("CHAT_DB_USER", "postgres"),
		DBPass:          getEnv("CHAT_DB_PASS", "postgres"),
		DBName:          getEnv("CHAT_DB_NAME", "chat_db"),
		RedisHost:       getEnv("CHAT_REDIS_HOST", "localhost"),
		RedisPort:       getEnv("CHAT_REDIS_PORT", "6379"),
		KafkaBrokers:    getEnv("CHAT_KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:      getEnv("CHAT_KAFKA_TOPIC", "messages.created"),
		JWTSecret:       getEnv("JWT_SECRET", "replace-this-with-a-strong-secret"),
		AccessTTL:       getDuration("JWT_ACCESS_TTL", time.Hour),
		RefreshTTL:      getDuration("JWT_REFRESH_TTL", 24*time.Hour),
		DefaultUserPass: getEnv("DEFAULT_USER_PASS", "P@ssw0rd"),
		AdminUsername:   getEnv("ADMIN_USERNAME", "dev"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "dev"),
		AutoMigrate:     getBool("AUTO_MIGRATE", true),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
