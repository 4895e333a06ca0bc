package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/krisalay/expiring-map/config"
	"github.com/krisalay/expiring-map/syncmap"
	"github.com/krisalay/expiring-map/types"
)

// ================= BENCHMARK =================

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "expiringmap-benchmark",
		Level: cfg.Level(),
	})

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger hclog.Logger) error {
	bc := cfg.Benchmark
	logger.Info("config",
		"ttl", cfg.TTL,
		"workers", bc.Workers,
		"keys", bc.Keys,
		"ops_per_worker", bc.OpsPerWorker,
	)

	m, err := syncmap.New[string, int](cfg.TTL)
	if err != nil {
		return err
	}

	keys := make([]string, bc.Keys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	// ---------------- Preload ----------------
	// Every insert sweeps the whole map, so preloading is quadratic in keys.
	preloadStart := time.Now()
	for i, k := range keys {
		m.Insert(k, i)
	}
	logger.Info("preload complete", "duration", time.Since(preloadStart))

	// ---------------- Load Test ----------------
	var loads atomic.Int64
	loader := types.LoaderFunc[string, int](func(context.Context, string) (int, error) {
		loads.Add(1)
		return 0, nil
	})

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < bc.Workers; w++ {
		g.Go(func() error {
			for j := 0; j < bc.OpsPerWorker; j++ {
				k := keys[(w*bc.OpsPerWorker+j)%len(keys)]
				switch j % 4 {
				case 0:
					m.Update(k, func(v *int) { *v++ })
				case 1:
					if _, err := m.GetOrLoad(gctx, k, loader); err != nil {
						return err
					}
				case 2:
					m.At(k)
				case 3:
					m.EvictExpired()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	duration := time.Since(start)
	totalOps := bc.Workers * bc.OpsPerWorker

	logger.Info("results",
		"total_ops", totalOps,
		"duration", duration,
		"ops_per_sec", fmt.Sprintf("%.2f", float64(totalOps)/duration.Seconds()),
		"loader_calls", loads.Load(),
		"final_len", m.Len(),
	)
	return nil
}
