package observable

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/vnykmshr/rxflow/internal/testutil"
	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// flaky fails the first n subscriptions.
func flaky(n int32, attempts *atomic.Int32) Observable[string] {
	return Defer(func() Observable[string] {
		if attempts.Inc() <= n {
			return Fail[string](errBoom)
		}
		return Just("contacts")
	})
}

func TestRetryRecovers(t *testing.T) {
	var attempts atomic.Int32
	src := Retry(flaky(2, &attempts), backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 5))

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	got, err := ToSlice(ctx, src)

	require.NoError(t, err)
	testutil.AssertSlice(t, got, []string{"contacts"})
	assert.Equal(t, int32(3), attempts.Load())
}

func TestRetryGivesUp(t *testing.T) {
	var attempts atomic.Int32
	src := Retry(flaky(100, &attempts), backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2))

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	_, err := ToSlice(ctx, src)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestRetrySkipsConfigurationErrors(t *testing.T) {
	var attempts atomic.Int32
	src := Retry(Defer(func() Observable[int64] {
		attempts.Inc()
		return Interval(0)
	}), &backoff.ZeroBackOff{})

	_, err := ToSlice(context.Background(), src)

	assert.True(t, rxerrors.IsValidationError(err))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestRetryWaitsForBackOff(t *testing.T) {
	mock := clock.NewMock()
	var attempts atomic.Int32
	src := Retry(flaky(1, &attempts), backoff.NewConstantBackOff(time.Second), WithClock(mock))

	rec := testutil.NewRecorder[string]()
	src.Subscribe(context.Background(), rec)
	assert.Equal(t, int32(1), attempts.Load())

	mock.Add(time.Second)
	rec.Wait(t)

	testutil.AssertSlice(t, rec.Values(), []string{"contacts"})
	assert.Equal(t, int32(2), attempts.Load())
}

func TestRetryDisposeCancelsPendingAttempt(t *testing.T) {
	mock := clock.NewMock()
	var attempts atomic.Int32
	src := Retry(flaky(1, &attempts), backoff.NewConstantBackOff(time.Second), WithClock(mock))

	d := src.Subscribe(context.Background(), nil)
	d.Dispose()
	mock.Add(2 * time.Second)

	assert.Equal(t, int32(1), attempts.Load())
}
