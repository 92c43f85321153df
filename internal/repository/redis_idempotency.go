package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyTTL   = 24 * time.Hour
	idempotencyInFlight = "in-flight"
)

var reserveKeyScript = redis.NewScript(`
	-- KEYS[1] = idempotency key
	-- ARGV = [in-flight marker, ttl seconds]

	local value = redis.call("GET", KEYS[1])
	if value then
		return value
	end

	redis.call("SET", KEYS[1], ARGV[1], "EX", ARGV[2])
	return false
`)

type RedisIdempotencyStore struct {
	client redis.UniversalClient
}

func NewRedisIdempotencyStore(client redis.UniversalClient) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
	}
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, userId int, key string) (int, error) {
	value, err := reserveKeyScript.Run(
		ctx,
		s.client,
		[]string{idempotencyKey(userId, key)},
		idempotencyInFlight,
		int(idempotencyKeyTTL.Seconds()),
	).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	if value == idempotencyInFlight {
		return 0, domain.ErrIdempotencyKeyInFlight
	}

	paymentId, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt idempotency record %q: %w", value, err)
	}

	return paymentId, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, userId int, key string, paymentId int) error {
	return s.client.Set(ctx, idempotencyKey(userId, key), paymentId, idempotencyKeyTTL).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, userId int, key string) error {
	return s.client.Del(ctx, idempotencyKey(userId, key)).Err()
}

func idempotencyKey(userId int, key string) string {
	return fmt.Sprintf("idempotency:payment:%d:%s", userId, key)
}
