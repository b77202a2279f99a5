package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

// redisBackend keeps one hash per class, field = id, value = stored JSON.
// Commits apply the same cascade and reference rules as the file backend.
type redisBackend struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStorage(ctx context.Context, rdb *redis.Client, prefix string, logger Logger) (*Storage, error) {
	if rdb == nil {
		return nil, errors.New("redis storage: RDB is required")
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis storage: ping: %w", err)
	}
	if prefix == "" {
		prefix = "hbnb:"
	}
	s := newStorage(&redisBackend{rdb: rdb, prefix: prefix}, logger)
	s.logger.Infof("redis storage: connected, key prefix %q", prefix)
	return s, nil
}

func (b *redisBackend) name() string { return "redis" }

func (b *redisBackend) hashKey(kind models.Kind) string {
	return b.prefix + string(kind)
}

type rawEntry struct {
	kind models.Kind
	id   string
	data string
}

// hashReader is satisfied by both *redis.Client and *redis.Tx.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func (b *redisBackend) loadRaw(ctx context.Context, rd hashReader, kinds []models.Kind) (map[string]rawEntry, error) {
	out := make(map[string]rawEntry)
	for _, kind := range kinds {
		vals, err := rd.HGetAll(ctx, b.hashKey(kind)).Result()
		if err != nil {
			return nil, err
		}
		for id, data := range vals {
			out[models.KeyOf(kind, id)] = rawEntry{kind: kind, id: id, data: data}
		}
	}
	return out, nil
}

func decodeEntries(raw map[string]rawEntry) (map[string]models.Record, error) {
	out := make(map[string]models.Record, len(raw))
	for key, e := range raw {
		rec, err := models.DecodeRecord([]byte(e.data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out[key] = rec
	}
	return out, nil
}

func (b *redisBackend) load(ctx context.Context, kinds []models.Kind) (map[string]models.Record, error) {
	raw, err := b.loadRaw(ctx, b.rdb, kinds)
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw)
}

func (b *redisBackend) fetch(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	data, err := b.rdb.HGet(ctx, b.hashKey(kind), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return models.DecodeRecord([]byte(data))
}

func (b *redisBackend) count(ctx context.Context, kinds []models.Kind) (int, error) {
	total := 0
	for _, kind := range kinds {
		n, err := b.rdb.HLen(ctx, b.hashKey(kind)).Result()
		if err != nil {
			return 0, err
		}
		total += int(n)
	}
	return total, nil
}

// commitRetries bounds how often a commit is replayed after another
// client touched the watched hashes.
const commitRetries = 10

func (b *redisBackend) commit(ctx context.Context, ops []op) error {
	keys := make([]string, 0, len(models.Kinds))
	for _, kind := range models.Kinds {
		keys = append(keys, b.hashKey(kind))
	}
	for i := 0; i < commitRetries; i++ {
		err := b.rdb.Watch(ctx, func(tx *redis.Tx) error {
			return b.commitTx(ctx, tx, ops)
		}, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("redis storage: commit: %w", redis.TxFailedErr)
}

// commitTx runs under WATCH on every class hash, so the EXEC fails if any
// of them changed after they were read.
func (b *redisBackend) commitTx(ctx context.Context, tx *redis.Tx, ops []op) error {
	raw, err := b.loadRaw(ctx, tx, models.Kinds)
	if err != nil {
		return err
	}
	current, err := decodeEntries(raw)
	if err != nil {
		return err
	}
	next := make(map[string]models.Record, len(current))
	for k, v := range current {
		next[k] = v
	}
	if err := applyOps(next, ops); err != nil {
		return err
	}

	writes := make(map[string]string)
	for key, rec := range next {
		data, err := models.EncodeRecord(rec)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if e, ok := raw[key]; !ok || e.data != string(data) {
			writes[key] = string(data)
		}
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, e := range raw {
			if _, ok := next[key]; !ok {
				pipe.HDel(ctx, b.hashKey(e.kind), e.id)
			}
		}
		for key, data := range writes {
			rec := next[key]
			pipe.HSet(ctx, b.hashKey(rec.Kind()), rec.Base().ID, data)
		}
		return nil
	})
	return err
}

func (b *redisBackend) reload(context.Context) error { return nil }

func (b *redisBackend) reset(ctx context.Context) error {
	keys := make([]string, 0, len(models.Kinds))
	for _, kind := range models.Kinds {
		keys = append(keys, b.hashKey(kind))
	}
	return b.rdb.Del(ctx, keys...).Err()
}

func (b *redisBackend) close() error {
	return b.rdb.Close()
}
