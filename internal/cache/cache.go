package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nazmulhs/farebridge/internal/models"
)

// CachedSearch is a reconciled, markup-applied search result. Role is part
// of the cache key because the same search prices differently for USER and
// AGENT callers.
type CachedSearch struct {
	TraceID  string         `json:"trace_id"`
	Shape    string         `json:"shape"`
	Offers   []models.Offer `json:"offers"`
	Outbound []models.Offer `json:"outbound,omitempty"`
	Inbound  []models.Offer `json:"inbound,omitempty"`
}

type Cache interface {
	Get(ctx context.Context, req models.SearchRequest, role models.Role) (CachedSearch, bool)
	Set(ctx context.Context, req models.SearchRequest, role models.Role, result CachedSearch) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest, role models.Role) (CachedSearch, bool) {
	key := generateKey(req, role)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return CachedSearch{}, false
	}

	var result CachedSearch
	if err := json.Unmarshal(data, &result); err != nil {
		return CachedSearch{}, false
	}

	return result, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, role models.Role, result CachedSearch) error {
	key := generateKey(req, role)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.SearchRequest, role models.Role) (CachedSearch, bool) {
	return CachedSearch{}, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.SearchRequest, role models.Role, result CachedSearch) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(req models.SearchRequest, role models.Role) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Adults        int
		Children      int
		Infants       int
		CabinClass    string
		Role          string
	}{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		CabinClass:    req.CabinClass,
		Role:          string(role),
	}

	if req.ReturnDate != nil {
		keyData.ReturnDate = *req.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}
