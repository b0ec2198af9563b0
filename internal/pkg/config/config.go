package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret signs tokens when JWT_SECRET_KEY is unset outside production.
// Anyone who knows it can mint valid tokens.
const DevJWTSecret = "demandhub-dev-secret-do-not-use-in-production"

const EnvProduction = "production"

var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY is required in production")

type Config struct {
	Port        string   `env:"PORT,           default=8080"`
	Env         string   `env:"ENV,            default=development"`
	LogLevel    string   `env:"LOG_LEVEL,      default=info"`
	JWTSecret   string   `env:"JWT_SECRET_KEY"`
	CORSOrigins []string `env:"CORS_ORIGINS,   default=*"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig

	// UsingDevSecret is set by Load when JWTSecret fell back to DevJWTSecret.
	UsingDevSecret bool
}

type MongoConfig struct {
	URI      string `env:"MONGO_URL, default=mongodb://localhost:27017"`
	Database string `env:"DB_NAME,   default=demandhub"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// ThrottleConfig bounds failed logins per email. A zero Limit disables
// throttling.
type ThrottleConfig struct {
	Limit  int           `env:"LOGIN_THROTTLE_LIMIT,  default=5"`
	Window time.Duration `env:"LOGIN_THROTTLE_WINDOW, default=15m"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWTSecret = DevJWTSecret
		cfg.UsingDevSecret = true
	}
	if cfg.Throttle.Limit < 0 {
		return nil, fmt.Errorf("config: LOGIN_THROTTLE_LIMIT must not be negative")
	}
	return &cfg, nil
}
