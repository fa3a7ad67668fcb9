package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Bundler  BundlerConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AIConfig selects the enrichment provider. Every field is optional; an empty
// configuration is the documented "enrichment disabled" state, not an error.
type AIConfig struct {
	Provider         string
	GroqAPIKey       string
	GroqModel        string
	OpenRouterAPIKey string
	OpenRouterModel  string
	TimeoutSeconds   int
}

type BundlerConfig struct {
	// SizeDiscounts switches bundle pricing from plain additive to the
	// size-based discount table. Off by default.
	SizeDiscounts   bool
	CacheTTLSeconds int
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	aiTimeout, err := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "10"))
	if err != nil || aiTimeout <= 0 {
		return nil, errors.New("invalid ai timeout")
	}

	cacheTTL, err := strconv.Atoi(getEnv("BUNDLE_CACHE_TTL_SECONDS", "60"))
	if err != nil || cacheTTL < 0 {
		return nil, errors.New("invalid bundle cache ttl")
	}

	redisDB := 0
	redisEnabled := os.Getenv("REDIS_HOST") != ""
	if redisEnabled {
		redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
		if err != nil {
			return nil, errors.New("invalid redis database")
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Huggle Bundler API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "huggle_bundler"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		AI: AIConfig{
			Provider:         getEnv("AI_PROVIDER", ""),
			GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
			GroqModel:        getEnv("GROQ_MODEL", ""),
			OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterModel:  getEnv("OPENROUTER_MODEL", ""),
			TimeoutSeconds:   aiTimeout,
		},
		Bundler: BundlerConfig{
			SizeDiscounts:   getEnv("BUNDLE_SIZE_DISCOUNTS", "false") == "true",
			CacheTTLSeconds: cacheTTL,
		},
		Redis: RedisConfig{
			Enabled:       redisEnabled,
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
