package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zenithtodo/zenith/internal/todo"
)

const (
	redisDocPrefix = "zenith:todo:"
	redisIndexKey  = "zenith:todos"
	redisMaxRetry  = 3
)

// Redis stores each task as a JSON document under its own key, with a sorted
// set indexing ids by creation time.
type Redis struct {
	rdb *redis.Client
	now func() time.Time
}

// OpenRedis connects using a redis:// or rediss:// URL.
func OpenRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opts)), nil
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

func redisDocKey(id string) string {
	return redisDocPrefix + id
}

// List implements Store.
func (r *Redis) List(ctx context.Context) ([]todo.Task, error) {
	ids, err := r.rdb.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list todo ids: %w", err)
	}
	tasks := []todo.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisDocKey(id)
	}
	docs, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	for _, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			// Index entry without a document: deleted between the two reads.
			continue
		}
		var t todo.Task
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("failed to decode todo: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Insert implements Store.
func (r *Redis) Insert(ctx context.Context, t todo.Task) (todo.Task, error) {
	t, err := prepareInsert(t, r.now)
	if err != nil {
		return todo.Task{}, err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to encode todo: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisDocKey(t.ID), data, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(t.CreatedAt.UnixMicro()), Member: t.ID})
		return nil
	})
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to insert todo: %w", err)
	}
	return t, nil
}

// Update implements Store using optimistic locking on the document key.
func (r *Redis) Update(ctx context.Context, id string, p todo.Patch) (todo.Task, error) {
	if !validID(id) {
		return todo.Task{}, ErrNotFound
	}
	key := redisDocKey(id)

	var updated todo.Task
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load todo: %w", err)
		}

		var current todo.Task
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("failed to decode todo: %w", err)
		}
		updated = p.Apply(current)
		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("failed to encode todo: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxRetry; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return todo.Task{}, err
		}
		return updated, nil
	}
	return todo.Task{}, fmt.Errorf("failed to update todo %s: too much contention", id)
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}

	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisDocKey(id))
		pipe.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping implements Store.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
