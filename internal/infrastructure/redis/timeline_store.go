package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultKey     = "widget:timeline"
	DefaultChannel = "widget:timeline:updates"
)

var _ application.TimelineStore = (*Store)(nil)

// Store keeps the current timeline under Key until its refresh deadline and
// announces every save on Channel.
type Store struct {
	Client  *redis.Client
	Key     string
	Channel string
	Log     *zap.Logger
	now     func() time.Time
}

func New(client *redis.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{Client: client, Key: DefaultKey, Channel: DefaultChannel, Log: log, now: time.Now}
}

func (s *Store) ttl(tl domain.Timeline) time.Duration {
	if tl.RefreshAfter.IsZero() {
		return 0
	}
	now := s.now
	if now == nil {
		now = time.Now
	}
	ttl := tl.RefreshAfter.Sub(now())
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	return ttl
}

func (s *Store) Save(ctx context.Context, tl domain.Timeline) error {
	data, err := json.Marshal(tl)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if err := s.Client.Set(ctx, s.Key, data, s.ttl(tl)).Err(); err != nil {
		return fmt.Errorf("set timeline: %w", err)
	}
	if err := s.Client.Publish(ctx, s.Channel, data).Err(); err != nil {
		return fmt.Errorf("publish timeline: %w", err)
	}
	return nil
}

func (s *Store) Current(ctx context.Context) (domain.Timeline, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Timeline{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Timeline{}, fmt.Errorf("get timeline: %w", err)
	}
	var tl domain.Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return domain.Timeline{}, fmt.Errorf("decode timeline: %w", err)
	}
	return tl, nil
}

// Subscribe returns once the subscription is confirmed by the server.
func (s *Store) Subscribe(ctx context.Context) (<-chan domain.Timeline, error) {
	ps := s.Client.Subscribe(ctx, s.Channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe timeline: %w", err)
	}
	in := ps.Channel()
	out := make(chan domain.Timeline, 1)
	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				var tl domain.Timeline
				if err := json.Unmarshal([]byte(msg.Payload), &tl); err != nil {
					s.Log.Warn("timeline_store.bad_message", zap.Error(err))
					continue
				}
				select {
				case out <- tl:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.Client.Ping(ctx).Err() }
