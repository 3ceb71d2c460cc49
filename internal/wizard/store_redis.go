package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const DefaultDraftTTL = 24 * time.Hour

// maxUpdateAttempts bounds the optimistic retries of RedisStore.Update.
const maxUpdateAttempts = 10

// RedisStore keeps drafts as JSON under draft:<id>. Every read or write
// pushes the expiry out by ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(id uuid.UUID) string { return "draft:" + id.String() }

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Draft, error) {
	b, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	s.client.Expire(ctx, draftKey(id), s.ttl)
	return &d, nil
}

func (s *RedisStore) Save(ctx context.Context, d *Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, draftKey(d.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}

// Update reads, modifies and writes the draft inside WATCH/MULTI. A write by
// another client between the read and the EXEC restarts the cycle.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, fn func(d *Draft) error) (*Draft, error) {
	key := draftKey(id)
	var out *Draft
	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get draft: %w", err)
		}
		var d Draft
		if err := json.Unmarshal(b, &d); err != nil {
			return fmt.Errorf("decode draft: %w", err)
		}
		if err := fn(&d); err != nil {
			return err
		}
		nb, err := json.Marshal(&d)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, nb, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = &d
		return nil
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, ErrDraftConflict
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}
