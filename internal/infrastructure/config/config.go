package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	// BaseURL and AnonKey identify the external auth backend. Both are
	// required; startup fails without them.
	BaseURL   string `env:"AUTH_BASE_URL"`
	AnonKey   string `env:"AUTH_ANON_KEY"`
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL, default=24h"`
	SecureCookies bool          `env:"SECURE_COOKIES, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,  default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
