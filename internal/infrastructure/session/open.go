package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mytime/console/internal/core/ports"
	"github.com/mytime/console/internal/infrastructure/db/mongo"
	"github.com/mytime/console/internal/infrastructure/db/postgres"
	"github.com/mytime/console/internal/infrastructure/db/redis"
	"github.com/mytime/console/internal/pkg/config"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Open builds the store named by cfg.Session.Backend. The returned closer
// releases any connection the store holds.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	backend := strings.ToLower(strings.TrimSpace(cfg.Session.Backend))

	switch backend {
	case "", BackendMemory:
		log.Info().Str("backend", BackendMemory).Msg("session store ready")
		return NewMemoryStore(), noop, nil

	case BackendFile:
		store, err := NewFileStore(cfg.Session.File)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", BackendFile).Str("path", store.Path()).Msg("session store ready")
		return store, noop, nil

	case BackendRedis:
		client, err := redis.Connect(ctx, redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", BackendRedis).Str("addr", cfg.Redis.Addr).Msg("session store ready")
		return redis.NewSessionStore(client, cfg.Redis.KeyPrefix, 0), func(context.Context) error { return client.Close() }, nil

	case BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Options{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", BackendMongo).Str("database", cfg.Mongo.Database).Msg("session store ready")
		return mongo.NewSessionStore(db), client.Disconnect, nil

	case BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		store, err := postgres.NewSessionStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("backend", BackendPostgres).Msg("session store ready")
		return store, func(context.Context) error { return db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
