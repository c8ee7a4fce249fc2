package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig

	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

type BackendConfig struct {
	URL            string        `env:"BACKEND_URL,        default=http://localhost:8000/api/v1/"`
	AuthScheme     string        `env:"AUTH_HEADER_SCHEME, default=bearer"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,    default=15s"`
}

type SessionConfig struct {
	Backend           string        `env:"SESSION_BACKEND,    default=memory"`
	File              string        `env:"SESSION_FILE"`
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT, default=30m"`
	Interactive       bool          `env:"INTERACTIVE,        default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mytime_console"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=mytime:session"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/mytime?sslmode=disable"`
}

// IsDevelopment reports whether the console runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
// Outside production a local .env file is applied first.
func Load() *Config {
	cfg, err := Process(context.Background(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration through lookuper, or through the process
// environment when lookuper is nil.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	if lookuper == nil {
		if env := os.Getenv("ENV"); env == "" || strings.EqualFold(env, "development") {
			_ = godotenv.Load()
		}
		lookuper = envconfig.OsLookuper()
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if cfg.Session.File == "" {
		cfg.Session.File = defaultSessionFile()
	}
	return &cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mytime-session.json"
	}
	return filepath.Join(dir, "mytime", "session.json")
}
