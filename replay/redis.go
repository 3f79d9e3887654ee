package replay

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBuffer stores trajectories as JSON in a Redis list, so that
// collection and world model training can run in separate processes
type RedisBuffer struct {
	client *redis.Client
	key    string
}

var _ Buffer = &RedisBuffer{}

// NewRedisBuffer on the given address and list key
func NewRedisBuffer(addr, key string) *RedisBuffer {
	return &RedisBuffer{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		key: key,
	}
}

func (r *RedisBuffer) Push(ctx context.Context, t *Trajectory) error {
	bs, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, r.key, string(bs)).Err()
}

func (r *RedisBuffer) Pop(ctx context.Context) (*Trajectory, error) {
	bs, err := r.client.LPop(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	t := &Trajectory{}
	if err := json.Unmarshal(bs, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *RedisBuffer) Len(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	return int(n), err
}

func (r *RedisBuffer) Close() error {
	return r.client.Close()
}
