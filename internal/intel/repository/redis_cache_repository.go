package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/logger"

	goRedis "github.com/redis/go-redis/v9"
)

// redisCacheEntry is the stored shape; redis handles expiry natively but the
// timestamps are kept so reads can report cache metadata.
type redisCacheEntry struct {
	Data               *entity.SECData `json:"data"`
	DominantFilingType string          `json:"dominant_filing_type"`
	CachedAt           time.Time       `json:"cached_at"`
	ExpiresAt          time.Time       `json:"expires_at"`
}

// NewRedisCacheRepository creates a CacheRepository backed by Redis with
// native TTL expiry.
func NewRedisCacheRepository(client *goRedis.Client, keyPrefix string, log *logger.Logger) CacheRepository {
	if keyPrefix == "" {
		keyPrefix = "sec_intel"
	}
	return &redisCacheRepository{client: client, keyPrefix: keyPrefix, logger: log}
}

type redisCacheRepository struct {
	client    *goRedis.Client
	keyPrefix string
	logger    *logger.Logger
}

func (r *redisCacheRepository) key(cik string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, cik)
}

func (r *redisCacheRepository) Get(ctx context.Context, cik string) (*entity.SECData, error) {
	raw, err := r.client.Get(ctx, r.key(cik)).Bytes()
	if err != nil {
		if err == goRedis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var stored redisCacheEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		r.logger.Warn("Discarding unreadable cache payload", logger.StringField("cik", cik), logger.ErrorField(err))
		return nil, nil
	}

	data := stored.Data
	if data == nil {
		return nil, nil
	}
	cachedAt := stored.CachedAt
	expiresAt := stored.ExpiresAt
	data.CachedAt = &cachedAt
	data.ExpiresAt = &expiresAt
	data.IsCached = true
	return data, nil
}

func (r *redisCacheRepository) Set(ctx context.Context, cik string, data *entity.SECData, dominantFilingType string) error {
	ttl := TTLForFilingType(dominantFilingType)
	now := time.Now()
	stored := redisCacheEntry{
		Data:               data,
		DominantFilingType: dominantFilingType,
		CachedAt:           now,
		ExpiresAt:          now.Add(ttl),
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return r.client.Set(ctx, r.key(cik), payload, ttl).Err()
}

func (r *redisCacheRepository) Delete(ctx context.Context, cik string) error {
	return r.client.Del(ctx, r.key(cik)).Err()
}

// PurgeExpired is a no-op: redis evicts expired keys itself.
func (r *redisCacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
