package observable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

func TestLastAndFirst(t *testing.T) {
	last, err := Last(context.Background(), Just(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, last)

	first, err := First(context.Background(), Just(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	_, err = Last(context.Background(), Empty[int]())
	assert.ErrorIs(t, err, rxerrors.ErrEmptySource)
	assert.ErrorContains(t, err, "last: ")
}

func TestFirstOfEmptyNamesItself(t *testing.T) {
	_, err := First(context.Background(), Empty[int]())
	require.ErrorIs(t, err, rxerrors.ErrEmptySource)
	assert.ErrorContains(t, err, "first: ")
	assert.NotContains(t, err.Error(), "last")
}

func TestForEachStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	var seen []int
	err := ForEach(context.Background(), Range(0, 100), func(v int) error {
		seen = append(seen, v)
		if v == 2 {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestBlockingHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := ToSlice(ctx, Never[int]())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = Last(cancelled, Never[int]())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForEachNilSource(t *testing.T) {
	err := ForEach[int](context.Background(), nil, func(int) error { return nil })
	assert.ErrorIs(t, err, rxerrors.ErrNilObservable)
}
