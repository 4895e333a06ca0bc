package expiringmap_test

import (
	"fmt"
	"testing"
	"time"

	expiringmap "github.com/krisalay/expiring-map"
)

func newBenchmarkMap(b *testing.B) *expiringmap.Map[string, int] {
	m, err := expiringmap.New[string, int](10 * time.Second)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

//
// ================= AT =================
//

func BenchmarkMapAtHit(b *testing.B) {
	m := newBenchmarkMap(b)
	m.Insert("key", 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.At("key")
	}
}

func BenchmarkMapAtOver1000(b *testing.B) {
	m := newBenchmarkMap(b)
	for i := 0; i < 1000; i++ {
		m.Insert(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.At("key-42")
	}
}

//
// ================= WRITE =================
//

// Every insert sweeps the whole map, so filling it is quadratic.
func BenchmarkMapFill1000(b *testing.B) {
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := newBenchmarkMap(b)
		for j, k := range keys {
			m.Insert(k, j)
		}
	}
}
