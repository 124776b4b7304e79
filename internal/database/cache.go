package database

import (
	"context"
	"encoding/json"
	"fmt"
	"tracker/config"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Cache database indexes within the valkey instance.
const (
	generalCacheDB = 0
	sessionCacheDB = 1
	userCacheDB    = 2
	eventsCacheDB  = 3
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	if config.DatabaseCacheAddress == "" || config.DatabaseCachePort == 0 {
		return log.Error("cache address or port is empty",
			"address", config.DatabaseCacheAddress,
			"port", config.DatabaseCachePort,
		)
	}

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)

	clients := []struct {
		target *CacheClient
		db     int
		name   string
	}{
		{&s.Cache.General, generalCacheDB, "General"},
		{&s.Cache.Session, sessionCacheDB, "Session"},
		{&s.Cache.User, userCacheDB, "User"},
		{&s.Cache.Events, eventsCacheDB, "Events"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{address},
			SelectDB:    c.db,
		})
		if err != nil {
			return log.Err("failed to create cache client", err, "cache", c.name, "address", address)
		}
		*c.target = client
	}

	log.Info("Connected to cache", "address", address)
	return nil
}

// CacheBuilder is a fluent accessor for a single cache key.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  string
	ttl    time.Duration
	ctx    context.Context
	err    error
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithValue(value string) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithStruct(v any) *CacheBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("failed to marshal cache value: %w", err)
		return b
	}
	b.value = string(data)
	return b
}

func (b *CacheBuilder) Set() error {
	if b.err != nil {
		return b.err
	}
	if b.client == nil {
		return fmt.Errorf("cache client is nil")
	}

	cmd := b.client.B().Set().Key(b.key).Value(b.value)
	if b.ttl > 0 {
		return b.client.Do(b.ctx, cmd.Ex(b.ttl).Build()).Error()
	}
	return b.client.Do(b.ctx, cmd.Build()).Error()
}

// Get unmarshals the cached value into dest. Returns found=false on a miss.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, fmt.Errorf("cache client is nil")
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return true, nil
}

// GetString returns the raw cached string. Returns found=false on a miss.
func (b *CacheBuilder) GetString() (string, bool, error) {
	if b.client == nil {
		return "", false, fmt.Errorf("cache client is nil")
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return raw, true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return fmt.Errorf("cache client is nil")
	}
	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
