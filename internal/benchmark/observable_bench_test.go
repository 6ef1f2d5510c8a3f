package benchmark

import (
	"context"
	"testing"

	"github.com/vnykmshr/rxflow/pkg/reactive/aggregate"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

func ints(size int) []int {
	data := make([]int, size)
	for i := range data {
		data[i] = i
	}
	return data
}

// BenchmarkFromSlice measures subscribing to a slice source.
func BenchmarkFromSlice(b *testing.B) {
	for _, size := range []int{10, 100, 1000, 10000} {
		src := observable.FromSlice(ints(size))

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = observable.ToSlice(context.Background(), src)
			}
		})
	}
}

// BenchmarkMapFilter measures a chained map and filter.
func BenchmarkMapFilter(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		src := observable.Filter(
			observable.Map(observable.FromSlice(ints(size)), func(n int) int { return n * 2 }),
			func(n int) bool { return n%3 == 0 },
		)

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = observable.ToSlice(context.Background(), src)
			}
		})
	}
}

// BenchmarkFlatMap measures the serializer under synchronous inners.
func BenchmarkFlatMap(b *testing.B) {
	for _, size := range []int{100, 1000} {
		src := observable.FlatMap(observable.FromSlice(ints(size)), func(n int) observable.Observable[int] {
			return observable.Just(n, n+1)
		})

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = observable.ToSlice(context.Background(), src)
			}
		})
	}
}

// BenchmarkConcatMap measures sequential inner subscription.
func BenchmarkConcatMap(b *testing.B) {
	for _, size := range []int{100, 1000} {
		src := observable.ConcatMap(observable.FromSlice(ints(size)), func(n int) observable.Observable[int] {
			return observable.Just(n)
		})

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = observable.ToSlice(context.Background(), src)
			}
		})
	}
}

// BenchmarkSum measures a reduction to a single value.
func BenchmarkSum(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		src := aggregate.Sum(observable.FromSlice(ints(size)))

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = observable.Last(context.Background(), src)
			}
		})
	}
}

func sizeLabel(size int) string {
	switch {
	case size >= 10000:
		return "10k"
	case size >= 1000:
		return "1k"
	case size >= 100:
		return "100"
	default:
		return "10"
	}
}
