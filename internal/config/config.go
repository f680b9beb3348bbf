// Package config centraliza o carregamento de configurações da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
)

type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	RateLimiter RateLimiterConfig
	Auth        AuthConfig
	AI          AIConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	MaxBodyBytes int64
}

type StorageConfig struct {
	Type  string
	Redis RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimiterConfig struct {
	AnonymousRule           domain.RateLimitRule
	AuthenticatedMultiplier int
	SweepThreshold          int
}

type AuthConfig struct {
	URL      string
	AnonKey  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type AIConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	server := ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		MaxBodyBytes: int64(maxBody),
	}

	storageType := strings.ToLower(getEnv("STORAGE_TYPE", "memory"))
	if storageType != "memory" && storageType != "redis" {
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE: %s", storageType)
	}

	redisConfig, err := buildRedisConfig()
	if err != nil {
		return Config{}, err
	}

	rateLimiterConfig, err := buildRateLimiterConfig()
	if err != nil {
		return Config{}, err
	}

	authConfig, err := buildAuthConfig()
	if err != nil {
		return Config{}, err
	}

	aiConfig, err := buildAIConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: server,
		Storage: StorageConfig{
			Type:  storageType,
			Redis: redisConfig,
		},
		RateLimiter: rateLimiterConfig,
		Auth:        authConfig,
		AI:          aiConfig,
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func buildRedisConfig() (RedisConfig, error) {
	port, err := getInt("REDIS_PORT", 6379)
	if err != nil {
		return RedisConfig{}, err
	}
	db, err := getInt("REDIS_DB", 0)
	if err != nil {
		return RedisConfig{}, err
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func buildRateLimiterConfig() (RateLimiterConfig, error) {
	windowSeconds, err := getInt("RATE_LIMIT_WINDOW_SECONDS", 60)
	if err != nil {
		return RateLimiterConfig{}, err
	}
	anonymous, err := getInt("RATE_LIMIT_ANONYMOUS_REQUESTS", 2)
	if err != nil {
		return RateLimiterConfig{}, err
	}
	multiplier, err := getInt("RATE_LIMIT_AUTHENTICATED_MULTIPLIER", 5)
	if err != nil {
		return RateLimiterConfig{}, err
	}
	sweep, err := getInt("RATE_LIMIT_SWEEP_THRESHOLD", 1000)
	if err != nil {
		return RateLimiterConfig{}, err
	}

	if windowSeconds <= 0 || anonymous <= 0 || multiplier <= 0 {
		return RateLimiterConfig{}, fmt.Errorf("rate limit window, requests and multiplier must be positive")
	}

	return RateLimiterConfig{
		AnonymousRule: domain.RateLimitRule{
			Requests: anonymous,
			Window:   time.Duration(windowSeconds) * time.Second,
		},
		AuthenticatedMultiplier: multiplier,
		SweepThreshold:          sweep,
	}, nil
}

func buildAuthConfig() (AuthConfig, error) {
	timeout, err := getInt("AUTH_TIMEOUT_SECONDS", 5)
	if err != nil {
		return AuthConfig{}, err
	}
	cacheTTL, err := getInt("AUTH_CACHE_TTL_SECONDS", 30)
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		URL:      getEnv("AUTH_URL", ""),
		AnonKey:  getEnv("AUTH_ANON_KEY", ""),
		Timeout:  time.Duration(timeout) * time.Second,
		CacheTTL: time.Duration(cacheTTL) * time.Second,
	}, nil
}

func buildAIConfig() (AIConfig, error) {
	timeout, err := getInt("AI_TIMEOUT_SECONDS", 60)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		URL:     getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		APIKey:  getEnv("AI_API_KEY", ""),
		Model:   getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		Timeout: time.Duration(timeout) * time.Second,
	}, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
