package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tatweer/accounting/internal/domain/accounting"
)

const defaultRateTTL = 15 * time.Minute

// CachedExchangeRateRepository decorates an ExchangeRateRepository with a
// Redis lookaside cache. Rates change rarely relative to how often reports
// read them, so a short TTL keeps conversions cheap without a dedicated
// invalidation channel.
type CachedExchangeRateRepository struct {
	inner     accounting.ExchangeRateRepository
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCachedExchangeRateRepository creates a caching decorator around the
// given repository using an existing Redis client.
func NewCachedExchangeRateRepository(inner accounting.ExchangeRateRepository, client *redis.Client, logger *zap.Logger) *CachedExchangeRateRepository {
	return &CachedExchangeRateRepository{
		inner:     inner,
		client:    client,
		keyPrefix: "accounting:rate:",
		ttl:       defaultRateTTL,
		logger:    logger,
	}
}

// FindRate returns the cached rate when present, falling back to the
// inner repository. Cache failures degrade to a direct lookup; a broken
// Redis must never fail a report.
func (r *CachedExchangeRateRepository) FindRate(ctx context.Context, fromCurrency, toCurrency string, onDate time.Time) (*accounting.ExchangeRate, error) {
	key := r.rateKey(fromCurrency, toCurrency, onDate)

	payload, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var rate accounting.ExchangeRate
		if unmarshalErr := json.Unmarshal(payload, &rate); unmarshalErr == nil {
			return &rate, nil
		}
		// Corrupt entry, drop it and fall through to the source
		r.client.Del(ctx, key)
	} else if err != redis.Nil {
		r.logger.Warn("exchange rate cache read failed",
			zap.String("key", key),
			zap.Error(err))
	}

	rate, err := r.inner.FindRate(ctx, fromCurrency, toCurrency, onDate)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(rate); marshalErr == nil {
		if setErr := r.client.Set(ctx, key, payload, r.ttl).Err(); setErr != nil {
			r.logger.Warn("exchange rate cache write failed",
				zap.String("key", key),
				zap.Error(setErr))
		}
	}

	return rate, nil
}

func (r *CachedExchangeRateRepository) rateKey(fromCurrency, toCurrency string, onDate time.Time) string {
	return fmt.Sprintf("%s%s:%s:%s", r.keyPrefix, fromCurrency, toCurrency, onDate.Format("2006-01-02"))
}

var _ accounting.ExchangeRateRepository = (*CachedExchangeRateRepository)(nil)
