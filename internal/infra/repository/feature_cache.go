package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
)

// CachedFeatureStore serves FindFeature from memcached. Catalog entries are
// never deleted through the API, so only hits are cached and a miss always
// falls through to postgres.
type CachedFeatureStore struct {
	*FeatureRepository
	mc     *memcache.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedFeatureStore(repo *FeatureRepository, mc *memcache.Client, ttl time.Duration, logger *zap.Logger) *CachedFeatureStore {
	return &CachedFeatureStore{
		FeatureRepository: repo,
		mc:                mc,
		ttl:               ttl,
		logger:            logger.Named("feature-cache"),
	}
}

func (s *CachedFeatureStore) key(id int64) string {
	return fmt.Sprintf("hs:feature:%s:%d", s.Kind().Slug(), id)
}

func (s *CachedFeatureStore) FindFeature(ctx context.Context, id int64) (domain.Feature, bool, error) {
	key := s.key(id)

	item, err := s.mc.Get(key)
	if err == nil {
		var feature domain.Feature
		if err := json.Unmarshal(item.Value, &feature); err == nil {
			feature.Kind = s.Kind()
			return feature, true, nil
		}
	} else if err != memcache.ErrCacheMiss {
		s.logger.Warn("memcached get failed", zap.String("key", key), zap.Error(err))
	}

	feature, ok, err := s.FeatureRepository.FindFeature(ctx, id)
	if err != nil || !ok {
		return feature, ok, err
	}

	value, err := json.Marshal(feature)
	if err != nil {
		return feature, true, nil
	}
	err = s.mc.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(s.ttl.Seconds()),
	})
	if err != nil {
		s.logger.Warn("memcached set failed", zap.String("key", key), zap.Error(err))
	}

	return feature, true, nil
}
