package redissource

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// Message is one pub/sub delivery.
type Message struct {
	Channel string
	Pattern string
	Payload string
}

// Config holds configuration for a pub/sub source.
type Config struct {
	// Channels to subscribe to with SUBSCRIBE.
	Channels []string

	// Patterns to subscribe to with PSUBSCRIBE.
	Patterns []string

	// SubscribeTimeout bounds the wait for the server to confirm the
	// subscriptions (defaults to 5 seconds).
	SubscribeTimeout time.Duration

	// Logger receives connection lifecycle events. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultSubscribeTimeout is used when Config.SubscribeTimeout is zero.
const DefaultSubscribeTimeout = 5 * time.Second

func validateConfig(client redis.UniversalClient, cfg Config) error {
	if err := validation.ValidateNotNil("redissource", "client", client); err != nil {
		return err
	}
	if len(cfg.Channels) == 0 && len(cfg.Patterns) == 0 {
		return rxerrors.NewValidationError("redissource", "channels", cfg.Channels, "cannot be empty").
			WithHint("set Channels or Patterns")
	}
	for _, ch := range cfg.Channels {
		if err := validation.ValidateNotEmpty("redissource", "channel", ch); err != nil {
			return err
		}
	}
	return validation.ValidateNonNegativeDuration("redissource", "subscribeTimeout", cfg.SubscribeTimeout)
}

// Subscribe returns an Observable of the messages published to the
// configured channels and patterns. Each subscription opens its own PubSub
// connection, waits until the server has confirmed every channel, then
// forwards messages from a dedicated goroutine. Disposing the subscription
// closes the connection; the stream completes if Redis closes it.
func Subscribe(client redis.UniversalClient, cfg Config) observable.Observable[Message] {
	if err := validateConfig(client, cfg); err != nil {
		return observable.Fail[Message](err)
	}
	if cfg.SubscribeTimeout == 0 {
		cfg.SubscribeTimeout = DefaultSubscribeTimeout
	}
	logger := cfg.Logger.With().Str("component", "redissource").Logger()

	return observable.Create(func(s observable.Subscriber[Message]) {
		ctx := s.Context()
		ps, err := open(ctx, client, cfg)
		if err != nil {
			s.OnError(err)
			return
		}
		s.Add(disposable.New(func() {
			if err := ps.Close(); err != nil {
				logger.Debug().Err(err).Msg("close pubsub")
			}
		}))
		logger.Debug().
			Strs("channels", cfg.Channels).
			Strs("patterns", cfg.Patterns).
			Msg("subscribed")

		ch := ps.Channel()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case m, ok := <-ch:
					if !ok {
						s.OnComplete()
						return
					}
					s.OnNext(Message{Channel: m.Channel, Pattern: m.Pattern, Payload: m.Payload})
				}
			}
		}()
	})
}

// open subscribes and blocks until every subscription is confirmed.
func open(ctx context.Context, client redis.UniversalClient, cfg Config) (*redis.PubSub, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.SubscribeTimeout)
	defer cancel()

	ps := client.Subscribe(ctx, cfg.Channels...)
	if len(cfg.Patterns) > 0 {
		if err := ps.PSubscribe(ctx, cfg.Patterns...); err != nil {
			_ = ps.Close()
			return nil, fmt.Errorf("redissource: psubscribe: %w", err)
		}
	}

	for pending := len(cfg.Channels) + len(cfg.Patterns); pending > 0; {
		msg, err := ps.Receive(ctx)
		if err != nil {
			_ = ps.Close()
			return nil, fmt.Errorf("redissource: subscribe: %w", err)
		}
		if _, ok := msg.(*redis.Subscription); ok {
			pending--
		}
	}
	return ps, nil
}

// Publish sends every item of src to channel and blocks until src
// completes. It returns the first publish error, the stream's error, or
// ctx.Err().
func Publish(ctx context.Context, client redis.UniversalClient, channel string, src observable.Observable[string]) error {
	if err := validation.ValidateNotNil("redissource", "client", client); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("redissource", "channel", channel); err != nil {
		return err
	}
	return observable.ForEach(ctx, src, func(payload string) error {
		if err := client.Publish(ctx, channel, payload).Err(); err != nil {
			return fmt.Errorf("redissource: publish to %s: %w", channel, err)
		}
		return nil
	})
}
