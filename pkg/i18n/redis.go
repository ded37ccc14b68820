package i18n

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisPersistence keeps the locale in the shared Redis instance.
type redisPersistence struct {
	client *redis.Client
}

func NewRedisPersistence(client *redis.Client) Persistence {
	return &redisPersistence{client: client}
}

func (p *redisPersistence) Get(ctx context.Context, key string) (string, error) {
	v, err := p.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (p *redisPersistence) Set(ctx context.Context, key, value string) error {
	return p.client.Set(ctx, key, value, 0).Err()
}
