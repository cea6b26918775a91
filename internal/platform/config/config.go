package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration assembled from the environment.
type Config struct {
	Addr          string
	JWTSigningKey string
	// Timezone is the reference zone every date key is resolved in, so the
	// same physical day never keys differently across features.
	Timezone  string
	WeekStart time.Weekday

	DatabaseURL string
	Redis       RedisConfig
	Geocoder    GeocoderConfig
}

// RedisConfig holds connection tuning for the optional Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// GeocoderConfig selects the external geocoding provider.
type GeocoderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
// Empty DatabaseURL and Redis.URL fall back to in-memory implementations,
// which keeps local development dependency-free.
func FromEnv() Config {
	addr := getenv("KEEPSAKE_ADDR", ":8080")

	jwtSigningKey := os.Getenv("KEEPSAKE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	weekStart := time.Sunday
	if getenv("KEEPSAKE_WEEK_START", "sunday") == "monday" {
		weekStart = time.Monday
	}

	return Config{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		Timezone:      getenv("KEEPSAKE_TIMEZONE", "UTC"),
		WeekStart:     weekStart,
		DatabaseURL:   os.Getenv("KEEPSAKE_DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("KEEPSAKE_REDIS_URL"),
			PoolSize:     getenvInt("KEEPSAKE_REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("KEEPSAKE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL: getenv("KEEPSAKE_GEOCODER_URL", "https://nominatim.openstreetmap.org"),
			Timeout: 10 * time.Second,
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
