package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries every runtime knob. Values come from the environment,
// with local-development defaults; cmd mains load .env first via godotenv.
type Config struct {
	Env         string
	HTTPAddr    string
	MetricsPort string

	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string

	// RedisAddr is optional; the server runs without the stats cache when
	// it is empty.
	RedisAddr string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

func Load() Config {
	return Config{
		Env:         getEnv("ENV", "local"),
		HTTPAddr:    getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		PostgresHost: getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnv("POSTGRES_PORT", "5432"),
		PostgresUser: getEnv("POSTGRES_USER", "bettrack"),
		PostgresPass: getEnv("POSTGRES_PASSWORD", "bettrack"),
		PostgresDB:   getEnv("POSTGRES_DB", "bettrack"),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "bettrack"),
		JWTAudience: getEnv("JWT_AUDIENCE", "bettrack-api"),
		AccessTTL:   getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:  getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
	}
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
