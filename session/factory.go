package session

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/indyteo/WebServerAPI/config"
)

// NewStoreFromConfig builds the session store named by the
// configuration.
func NewStoreFromConfig(cfg config.SessionsConfig) (Store, error) {
	switch cfg.Store {
	case "", config.SessionStoreMemory:
		return NewMemoryStore(), nil
	case config.SessionStoreFile:
		return NewFileStore(cfg.Directory)
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
