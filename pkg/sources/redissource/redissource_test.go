package redissource

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/rxflow/internal/testutil"
	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSubscribeReceivesMessages(t *testing.T) {
	mr, client := newClient(t)

	rec := testutil.NewRecorder[Message]()
	d := Subscribe(client, Config{Channels: []string{"taps"}}).Subscribe(context.Background(), rec)
	defer d.Dispose()

	// The subscription is confirmed before Subscribe returns.
	mr.Publish("taps", "1")
	mr.Publish("taps", "2")

	require.Eventually(t, func() bool { return rec.Len() == 2 }, 2*time.Second, 10*time.Millisecond)
	got := rec.Values()
	assert.Equal(t, Message{Channel: "taps", Payload: "1"}, got[0])
	assert.Equal(t, "2", got[1].Payload)
}

func TestSubscribePattern(t *testing.T) {
	mr, client := newClient(t)

	rec := testutil.NewRecorder[Message]()
	d := Subscribe(client, Config{Patterns: []string{"search.*"}}).Subscribe(context.Background(), rec)
	defer d.Dispose()

	mr.Publish("search.query", "rx")

	require.Eventually(t, func() bool { return rec.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	got := rec.Values()[0]
	assert.Equal(t, "search.*", got.Pattern)
	assert.Equal(t, "search.query", got.Channel)
	assert.Equal(t, "rx", got.Payload)
}

func TestDisposeUnsubscribes(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	d := Subscribe(client, Config{Channels: []string{"taps"}}).Subscribe(ctx, nil)
	subs, err := client.PubSubNumSub(ctx, "taps").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), subs["taps"])

	d.Dispose()
	require.Eventually(t, func() bool {
		subs, err := client.PubSubNumSub(ctx, "taps").Result()
		return err == nil && subs["taps"] == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBufferedTaps(t *testing.T) {
	mr, client := newClient(t)

	payloads := observable.Map(
		Subscribe(client, Config{Channels: []string{"taps"}}),
		func(m Message) string { return m.Payload },
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testutil.NewRecorder[[]string]()
	observable.Buffer(payloads, 50*time.Millisecond).Subscribe(ctx, rec)

	mr.Publish("taps", "a")
	mr.Publish("taps", "b")

	require.Eventually(t, func() bool {
		for _, batch := range rec.Values() {
			if len(batch) > 0 {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	var taps []string
	for _, batch := range rec.Values() {
		taps = append(taps, batch...)
	}
	assert.Subset(t, []string{"a", "b"}, taps)
}

func TestPublish(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	rec := testutil.NewRecorder[Message]()
	d := Subscribe(client, Config{Channels: []string{"queries"}}).Subscribe(ctx, rec)
	defer d.Dispose()

	err := Publish(ctx, client, "queries", observable.Just("r", "rx", "rxgo"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return rec.Len() == 3 }, 2*time.Second, 10*time.Millisecond)
	var got []string
	for _, m := range rec.Values() {
		got = append(got, m.Payload)
	}
	testutil.AssertSlice(t, got, []string{"r", "rx", "rxgo"})
}

func TestPublishFailure(t *testing.T) {
	mr, client := newClient(t)
	mr.Close()

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	err := Publish(ctx, client, "queries", observable.Just("x"))
	assert.Error(t, err)
}

func TestSubscribeConnectionFailure(t *testing.T) {
	mr, client := newClient(t)
	mr.Close()

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	_, err := observable.ToSlice(ctx, Subscribe(client, Config{Channels: []string{"taps"}, SubscribeTimeout: time.Second}))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	_, client := newClient(t)

	tests := []struct {
		name   string
		client redis.UniversalClient
		cfg    Config
	}{
		{"nil client", nil, Config{Channels: []string{"a"}}},
		{"no channels", client, Config{}},
		{"empty channel", client, Config{Channels: []string{""}}},
		{"negative timeout", client, Config{Channels: []string{"a"}, SubscribeTimeout: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := observable.ToSlice(context.Background(), Subscribe(tt.client, tt.cfg))
			assert.True(t, rxerrors.IsValidationError(err), "got %v", err)
		})
	}

	err := Publish(context.Background(), client, "", observable.Just("x"))
	assert.True(t, rxerrors.IsValidationError(err))
}
