package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"agri-connect/internal/domain"
)

// 与前端版保持同一个 key 命名，方便对照历史数据
const DefaultKey = "agri_connect_data_v1"

// RedisSnapshotter 把聚合 SET 到固定 key 下（持久化交给 redis 的 RDB/AOF）
type RedisSnapshotter struct {
	rdb *redis.Client
	key string
}

func NewRedis(rdb *redis.Client, key string) *RedisSnapshotter {
	if key == "" {
		key = DefaultKey
	}
	return &RedisSnapshotter{rdb: rdb, key: key}
}

func (r *RedisSnapshotter) Save(ctx context.Context, s domain.State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key, b, 0).Err()
}

func (r *RedisSnapshotter) Load(ctx context.Context) (domain.State, error) {
	var s domain.State
	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return s, ErrNotFound
		}
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, err
	}
	return s, nil
}
