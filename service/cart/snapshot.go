package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopzone.GO/core/apperr"
)

// SnapshotStore keeps cart snapshots by session key.
type SnapshotStore interface {
	// Load reports false when nothing is stored under key.
	Load(ctx context.Context, key string) (Snapshot, bool, error)
	Save(ctx context.Context, key string, s Snapshot) error
	Delete(ctx context.Context, key string) error
}

const redisKeyPrefix = "shopzone:cart:"

// RedisSnapshotStore stores snapshots as JSON with a sliding TTL.
type RedisSnapshotStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisSnapshotStore(client redis.Cmdable, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (r *RedisSnapshotStore) Load(ctx context.Context, key string) (Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, apperr.Transient("cart.snapshot.load", err)
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, false, errors.Wrap(err, "decode cart snapshot")
	}
	return s, true, nil
}

func (r *RedisSnapshotStore) Save(ctx context.Context, key string, s Snapshot) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode cart snapshot")
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, raw, r.ttl).Err(); err != nil {
		return apperr.Transient("cart.snapshot.save", err)
	}
	return nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return apperr.Transient("cart.snapshot.delete", err)
	}
	return nil
}

// Hydrate builds a store from the snapshot saved under key, or an empty
// store when there is none.
func Hydrate(ctx context.Context, ss SnapshotStore, key string) (*Store, error) {
	snap, ok, err := ss.Load(ctx, key)
	if err != nil {
		return NewStore(), err
	}
	if !ok {
		return NewStore(), nil
	}
	return NewStoreFrom(snap), nil
}

// Persist saves every snapshot of st under key. Save failures are logged
// and do not affect the in-memory cart.
func Persist(st *Store, ss SnapshotStore, key string, log *zap.Logger) (unsubscribe func()) {
	return st.Subscribe(func(s Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := ss.Save(ctx, key, s); err != nil {
			log.Warn("cart snapshot not saved", zap.String("session", key), zap.Error(err))
		}
	})
}
