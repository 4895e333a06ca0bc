package api_test

import (
	"testing"
	"time"

	"github.com/shoenig/test/must"

	expiringmap "github.com/krisalay/expiring-map"
	"github.com/krisalay/expiring-map/api"
	"github.com/krisalay/expiring-map/clock"
	"github.com/krisalay/expiring-map/syncmap"
)

var (
	_ api.ExpiringMap[string, int] = (*expiringmap.Map[string, int])(nil)
	_ api.ExpiringMap[string, int] = (*syncmap.Synchronized[string, int])(nil)
)

func exercise(t *testing.T, m api.ExpiringMap[string, int], clk *clock.Fake, insert func(string, int)) {
	t.Helper()

	insert("a", 1)
	clk.Advance(time.Second)
	insert("b", 2)
	must.Eq(t, 2, m.Len())

	clk.Advance(1500 * time.Millisecond)
	_, ok := m.Peek("a")
	must.True(t, ok)

	must.Eq(t, 1, m.EvictExpired())
	must.Eq(t, 0, m.EvictExpired())

	seen := map[string]int{}
	m.Range(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	must.Eq(t, map[string]int{"b": 2}, seen)

	must.Eq(t, 1, m.Remove("b"))
	must.Eq(t, 0, m.Remove("b"))
	must.Eq(t, 2*time.Second, m.TTL())

	insert("c", 3)
	m.Clear()
	must.Eq(t, 0, m.Len())
}

func TestContract_Map(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	m, err := expiringmap.New[string, int](2*time.Second, expiringmap.WithClock(clk))
	must.NoError(t, err)

	exercise(t, m, clk, func(k string, v int) { m.Insert(k, v) })
}

func TestContract_Synchronized(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	s, err := syncmap.New[string, int](2*time.Second, expiringmap.WithClock(clk))
	must.NoError(t, err)

	exercise(t, s, clk, func(k string, v int) { s.Insert(k, v) })
}
