// internal/overlay/redis.go
package overlay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"workbridge-workers/internal/common/database"
	"workbridge-workers/internal/common/logger"
)

// RedisStore backs the overlay with Redis. Entries expire after ttl so
// abandoned workflow state does not accumulate; a zero ttl disables expiry.
type RedisStore struct {
	client *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisStore(client *database.RedisClient, ttl time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key)
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl); err != nil {
		return err
	}
	s.announce(ctx, Event{Key: key, Op: OpSet, Value: value})
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...); err != nil {
		return err
	}
	for _, key := range keys {
		s.announce(ctx, Event{Key: key, Op: OpDelete})
	}
	return nil
}

// announce publishes the event for watchers. A publish failure does not undo
// the write; reconciliation covers watchers that missed an event.
func (s *RedisStore) announce(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode overlay event", map[string]interface{}{
			"key": ev.Key,
		})
		return
	}
	if err := s.client.Publish(ctx, EventsChannel, payload); err != nil {
		s.logger.WithError(err).Warn("failed to publish overlay event", map[string]interface{}{
			"key": ev.Key,
		})
	}
}

func (s *RedisStore) Watch(ctx context.Context) (<-chan Event, error) {
	sub := s.client.Subscribe(ctx, EventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					s.logger.WithError(err).Warn("dropping malformed overlay event", map[string]interface{}{
						"payload": msg.Payload,
					})
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

func (s *RedisStore) Close() error {
	return nil
}
