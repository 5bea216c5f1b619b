package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Version string `yaml:"version"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	SessionTTL string `yaml:"session_ttl"`
}

type RateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type Config struct {
	Port              string
	GinMode           string
	APIVersion        string
	DBDriver          string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTIssuer         string
	SessionTTL        time.Duration
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, falling back to built-in defaults when the
// file is absent. Environment variables override both.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom reads configuration from the given yaml file path
func LoadFrom(path string) (*Config, error) {
	file := defaultConfigFile()
	if bytes, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(bytes, file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml at %s: %w", path, err)
		}
	}

	sessionTTL, err := time.ParseDuration(env("SESSION_TTL", file.JWT.SessionTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	window, err := time.ParseDuration(env("RATE_LIMIT_WINDOW", file.RateLimit.Window))
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	requests, err := strconv.Atoi(env("RATE_LIMIT_REQUESTS", strconv.Itoa(file.RateLimit.Requests)))
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit request count: %w", err)
	}

	redisDB, err := strconv.Atoi(env("REDIS_DB", strconv.Itoa(file.Redis.DB)))
	if err != nil {
		return nil, fmt.Errorf("invalid redis db index: %w", err)
	}

	return &Config{
		Port:              env("PORT", strconv.Itoa(file.App.Port)),
		GinMode:           env("GIN_MODE", file.App.GinMode),
		APIVersion:        file.App.Version,
		DBDriver:          env("DB_DRIVER", file.Database.Driver),
		DSN:               env("DB_DSN", file.Database.DSN),
		RedisAddr:         env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:           redisDB,
		JWTSecret:         env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:         env("JWT_ISSUER", file.JWT.Issuer),
		SessionTTL:        sessionTTL,
		RateLimitRequests: requests,
		RateLimitWindow:   window,
	}, nil
}

func defaultConfigFile() *ConfigFile {
	return &ConfigFile{
		App: AppConfig{
			Port:    8000,
			GinMode: "release",
			Version: "1.0.0",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		JWT: JWTConfig{
			Secret:     "dev-secret-change-me",
			Issuer:     "usermgmt",
			SessionTTL: "30m",
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   "60s",
		},
	}
}
