package authlockout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"launchpad/internal/ratelimit/models"
	"launchpad/pkg/requestcontext"
)

const (
	fieldCount       = "count"
	fieldWindowStart = "window_start"
	fieldLastFailure = "last_failure_at"

	failuresSuffix = ":failures"
	lockSuffix     = ":lock"
)

// RedisStore shares lockout counters across instances. Failures live in a hash
// that expires with the window; the lock is a separate key whose TTL is the
// lock duration.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.AuthLockout, error) {
	var (
		failures *redis.MapStringStringCmd
		lock     *redis.StringCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		failures = pipe.HGetAll(ctx, key+failuresSuffix)
		lock = pipe.Get(ctx, key+lockSuffix)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get auth lockout: %w", err)
	}

	fields := failures.Val()
	lockedUntil, err := parseLock(lock)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 && lockedUntil == nil {
		return nil, nil
	}
	record, err := recordFromHash(key, fields)
	if err != nil {
		return nil, err
	}
	record.LockedUntil = lockedUntil
	return record, nil
}

// RecordFailure increments the counter atomically. The window starts at the
// first failure and the hash expires when it ends.
func (s *RedisStore) RecordFailure(ctx context.Context, key string, window time.Duration) (*models.AuthLockout, error) {
	now := requestcontext.Now(ctx)
	hashKey := key + failuresSuffix

	var fields *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, hashKey, fieldCount, 1)
		pipe.HSetNX(ctx, hashKey, fieldWindowStart, now.UnixMilli())
		pipe.HSet(ctx, hashKey, fieldLastFailure, now.UnixMilli())
		pipe.ExpireNX(ctx, hashKey, window)
		fields = pipe.HGetAll(ctx, hashKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record auth failure: %w", err)
	}
	return recordFromHash(key, fields.Val())
}

func (s *RedisStore) Lock(ctx context.Context, key string, until time.Time) error {
	ttl := until.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, key+lockSuffix, until.UnixMilli(), ttl).Err(); err != nil {
		return fmt.Errorf("lock identifier: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key+failuresSuffix, key+lockSuffix).Err(); err != nil {
		return fmt.Errorf("clear auth lockout: %w", err)
	}
	return nil
}

func parseLock(cmd *redis.StringCmd) (*time.Time, error) {
	raw, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lock: %w", err)
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode lock expiry %q: %w", raw, err)
	}
	until := time.UnixMilli(ms).UTC()
	return &until, nil
}

func recordFromHash(key string, fields map[string]string) (*models.AuthLockout, error) {
	record := &models.AuthLockout{Identifier: key}
	if raw, ok := fields[fieldCount]; ok {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("decode failure count %q: %w", raw, err)
		}
		record.FailureCount = count
	}
	var err error
	if record.WindowStart, err = millisField(fields, fieldWindowStart); err != nil {
		return nil, err
	}
	if record.LastFailureAt, err = millisField(fields, fieldLastFailure); err != nil {
		return nil, err
	}
	return record, nil
}

func millisField(fields map[string]string, name string) (time.Time, error) {
	raw, ok := fields[name]
	if !ok {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode %s %q: %w", name, raw, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
