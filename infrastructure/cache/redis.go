package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// New conecta no Redis configurado ou devolve o cache nulo quando REDIS_URL está vazio
func New(ctx context.Context, cfg *config.Config) (SnapshotCache, error) {
	if cfg.Redis.URL == "" {
		logrus.Info("REDIS_URL não configurada, cache de keywords desativado")
		return NewNoopCache(), nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "REDIS_URL inválida")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "erro ao conectar no Redis")
	}

	logrus.WithField("ttl", cfg.Redis.SnapshotTTL.String()).Info("Cache de keywords conectado ao Redis")

	return NewRedisCache(client, cfg.Redis.SnapshotTTL), nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.KeywordSnapshot, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.RecordSnapshotCache(false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "erro ao ler %s do cache", key)
	}

	var snapshot domain.KeywordSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		// entrada corrompida é tratada como ausente e será sobrescrita
		logrus.WithField("key", key).WithError(err).Warn("Snapshot inválido no cache")
		metrics.RecordSnapshotCache(false)
		return nil, false, nil
	}

	metrics.RecordSnapshotCache(true)
	return &snapshot, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, snapshot *domain.KeywordSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar snapshot")
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "erro ao gravar %s no cache", key)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
