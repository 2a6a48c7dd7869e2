package config

import (
	"os"
	"strconv"
	"time"

	"gaia_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort   string
	JWTSecret string

	// Password reset
	ResetCodeTTL time.Duration

	// Optional Redis-backed rate limiting (off when RedisAddr is empty)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env honored).
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	resetTTL := 10 * time.Minute
	if v := os.Getenv("RESET_CODE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			resetTTL = time.Duration(n) * time.Second
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:       port,
		JWTSecret:     jwtSecret,
		ResetCodeTTL:  resetTTL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
	}
}
