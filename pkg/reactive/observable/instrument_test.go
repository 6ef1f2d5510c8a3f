package observable

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/rxflow/pkg/metrics"
)

func TestInstrument(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())

	_, err := ToSlice(context.Background(), Instrument(Just(1, 2, 3), "numbers", reg))
	require.NoError(t, err)
	_, err = ToSlice(context.Background(), Instrument(Fail[int](errBoom), "numbers", reg))
	assert.ErrorIs(t, err, errBoom)

	assert.Equal(t, 3.0, promtest.ToFloat64(reg.ItemsEmitted.WithLabelValues("numbers")))
	assert.Equal(t, 1.0, promtest.ToFloat64(reg.Completions.WithLabelValues("numbers")))
	assert.Equal(t, 1.0, promtest.ToFloat64(reg.Errors.WithLabelValues("numbers")))
	assert.Equal(t, 2.0, promtest.ToFloat64(reg.Disposals.WithLabelValues("numbers")))
	assert.Equal(t, 0.0, promtest.ToFloat64(reg.SubscriptionsActive.WithLabelValues("numbers")))
}

func TestInstrumentTracksLiveSubscriptions(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	src := Instrument(Never[int](), "idle", reg)

	a := src.Subscribe(context.Background(), nil)
	b := src.Subscribe(context.Background(), nil)
	assert.Equal(t, 2.0, promtest.ToFloat64(reg.SubscriptionsActive.WithLabelValues("idle")))

	a.Dispose()
	b.Dispose()
	assert.Equal(t, 0.0, promtest.ToFloat64(reg.SubscriptionsActive.WithLabelValues("idle")))
	assert.Equal(t, 2.0, promtest.ToFloat64(reg.Disposals.WithLabelValues("idle")))
}

func TestInstrumentNilRegistry(t *testing.T) {
	src := Just(1)
	assert.Same(t, src, Instrument(src, "x", nil))
}
