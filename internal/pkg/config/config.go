package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is read from the environment. The defaults reproduce the reference
// deployment: port 5001, one seeded doctor, everything in memory.
type Config struct {
	Port            string        `env:"PORT,              default=5001"`
	Env             string        `env:"ENV,               default=development"`
	LogLevel        string        `env:"LOG_LEVEL,         default=info"`
	StoreDriver     string        `env:"STORE_DRIVER,      default=memory"`
	TokenSigningKey string        `env:"TOKEN_SIGNING_KEY"`
	IdempotencyTTL  time.Duration `env:"IDEMPOTENCY_TTL,   default=24h"`

	Seed  SeedConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// SeedConfig describes the doctor account created at startup.
// PasswordHash, when set, takes precedence over Password.
type SeedConfig struct {
	Username     string `env:"SEED_USERNAME,      default=doctor1"`
	Password     string `env:"SEED_PASSWORD,      default=securepassword123"`
	PasswordHash string `env:"SEED_PASSWORD_HASH"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=health_records"`
}

// RedisConfig leaves Addr empty by default, which keeps idempotency keys in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDev reports whether the process runs in the development environment.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l, which lets tests supply a map.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, StoreMemory, StoreMongo)
	}
	if c.Seed.Username == "" {
		return fmt.Errorf("config: SEED_USERNAME must not be empty")
	}
	if c.Seed.Password == "" && c.Seed.PasswordHash == "" {
		return fmt.Errorf("config: one of SEED_PASSWORD or SEED_PASSWORD_HASH is required")
	}
	return nil
}
