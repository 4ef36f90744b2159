package kbest

import (
	"math/rand"
	"testing"
)

func BenchmarkResultSet_Insert(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	distances := make([]float32, 4096)
	for i := range distances {
		distances[i] = rng.Float32() * 100
	}

	rs := New(10, WithSeed(1))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rs.Insert(distances[i%len(distances)], int32(i))
	}
}

func BenchmarkResultSet_Readout(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	candidates := make([]Item, 64)
	for i := range candidates {
		candidates[i] = Item{ID: int32(i), Distance: rng.Float32() * 100}
	}

	rs := New(10, WithSeed(1))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rs.Reset()
		for _, c := range candidates {
			rs.Insert(c.Distance, c.ID)
		}
		_ = rs.Results()
	}
}

func BenchmarkSearcher_Offer(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	distances := make([]float32, 4096)
	for i := range distances {
		distances[i] = rng.Float32() * 100
	}

	sr := NewSearcher(10, WithResultSetOptions(WithSeed(1)))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sr.Offer(distances[i%len(distances)], int32(i))
	}
}
