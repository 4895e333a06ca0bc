package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	expiringmap "github.com/krisalay/expiring-map"
	"github.com/krisalay/expiring-map/api"
	"github.com/krisalay/expiring-map/clock"
	"github.com/krisalay/expiring-map/config"
	"github.com/krisalay/expiring-map/metrics"
)

// ================= MAIN =================

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "expiringmap-demo",
		Level: cfg.Level(),
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger hclog.Logger) error {
	logger.Info("starting", "ttl", cfg.TTL, "metrics_namespace", cfg.Metrics.Namespace)

	// ---------------- Metrics ----------------
	reg := prometheus.NewRegistry()
	pm := metrics.NewPrometheus(reg, cfg.Metrics.Namespace)

	// ---------------- Map ----------------
	// A fake clock replays the timeline instantly.
	start := time.Now()
	clk := clock.NewFake(start)

	m, err := expiringmap.New[string, int](cfg.TTL,
		expiringmap.WithClock(clk),
		expiringmap.WithMetrics(pm),
		expiringmap.WithLogger(logger.Named("map")),
	)
	if err != nil {
		return err
	}

	// Offsets are expressed in halves of the ttl so any configured ttl
	// produces the same outcome as ttl=2s with steps at 0, 1s, 2.5s, 3.5s.
	half := cfg.TTL / 2
	at := func(halves float64) {
		clk.Set(start.Add(time.Duration(halves * float64(half))))
	}

	// ====================================================
	logger.Info("1) insert a=1", "t", "0")
	m.Insert("a", 1)
	dump(logger, m)

	// ====================================================
	at(1)
	logger.Info("2) insert b=2", "t", half)
	m.Insert("b", 2)
	dump(logger, m)

	// ====================================================
	at(2.5)
	logger.Info("3) stale entries are still visible before a sweep")
	dump(logger, m)

	logger.Info("4) evict expired", "removed", m.EvictExpired())
	dump(logger, m)

	// ====================================================
	at(3.5)
	v := m.At("b")
	logger.Info("5) at(b) sweeps first, then creates a default entry", "b", *v)
	dump(logger, m)

	// ====================================================
	_, inserted := m.Insert("b", 99)
	logger.Info("6) insert b=99 on a live key", "inserted", inserted)
	logger.Info("7) remove b", "removed", m.Remove("b"))
	dump(logger, m)

	// ====================================================
	return printMetrics(logger, reg)
}

func dump(logger hclog.Logger, m api.ExpiringMap[string, int]) {
	keys := make([]string, 0, m.Len())
	m.Range(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := m.Peek(k)
		pairs = append(pairs, fmt.Sprintf("%s:%d", k, v))
	}
	logger.Info("contents", "len", m.Len(), "entries", pairs)
}

func printMetrics(logger hclog.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			logger.Info("metric", "name", mf.GetName(), "value", metric.GetCounter().GetValue())
		}
	}
	return nil
}
