// Package cache stores extracted keyword sets in Redis, keyed by a hash of the
// job description they came from.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the keyword cache
const DefaultPrefix = "gobot:keywords"

// DefaultTTL is how long an extracted keyword set is kept
const DefaultTTL = 24 * time.Hour

// KeywordCache reads and writes keyword sets in Redis
type KeywordCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a Redis client and verifies it answers PING
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// NewKeywordCache creates a keyword cache on an existing client
func NewKeywordCache(client *redis.Client, prefix string, ttl time.Duration) *KeywordCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &KeywordCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get returns the keyword set stored for hash. found is false on a cache miss.
func (c *KeywordCache) Get(ctx context.Context, hash string) (ks types.KeywordSet, found bool, err error) {
	raw, err := c.client.Get(ctx, c.makeKey(hash)).Bytes()
	if err == redis.Nil {
		return types.KeywordSet{}, false, nil
	}
	if err != nil {
		return types.KeywordSet{}, false, fmt.Errorf("redis get: %w", err)
	}

	ks, err = decode(raw)
	if err != nil {
		return types.KeywordSet{}, false, err
	}
	return ks, true, nil
}

// Set stores the keyword set for hash with the cache TTL
func (c *KeywordCache) Set(ctx context.Context, hash string, ks types.KeywordSet) error {
	raw, err := json.Marshal(ks)
	if err != nil {
		return fmt.Errorf("failed to marshal keyword set: %w", err)
	}
	if err := c.client.Set(ctx, c.makeKey(hash), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (c *KeywordCache) Close() error {
	return c.client.Close()
}

func (c *KeywordCache) makeKey(hash string) string {
	return fmt.Sprintf("%s:%s", c.prefix, hash)
}

// decode restores non-nil categories so cached sets encode exactly like fresh ones
func decode(raw []byte) (types.KeywordSet, error) {
	ks := types.NewKeywordSet()
	if err := json.Unmarshal(raw, &ks); err != nil {
		return types.KeywordSet{}, fmt.Errorf("failed to decode cached keyword set: %w", err)
	}
	for _, field := range []*[]string{&ks.Technical, &ks.Soft, &ks.Requirements, &ks.ExperienceYears, &ks.Education, &ks.All} {
		if *field == nil {
			*field = []string{}
		}
	}
	return ks, nil
}
