package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string
	Port        string
	RedisAddr   string

	KafkaBrokers []string

	JWTSecret     string
	SessionSecret string

	StrictMigrations      bool
	AllowTenantAutodetect bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func Load() Config {
	return Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		Port:                  getEnv("PORT", "5000"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:          splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		SessionSecret:         os.Getenv("SESSION_SECRET"),
		StrictMigrations:      getBool("STRICT_MIGRATIONS", false),
		AllowTenantAutodetect: getBool("ALLOW_TENANT_AUTODETECT", false),
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
