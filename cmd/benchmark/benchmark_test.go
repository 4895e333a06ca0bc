package main

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shoenig/test/must"

	"github.com/krisalay/expiring-map/config"
)

func TestRun_Small(t *testing.T) {
	cfg := config.Default()
	cfg.TTL = time.Minute
	cfg.Benchmark = config.BenchmarkConfig{Workers: 4, Keys: 50, OpsPerWorker: 200}

	must.NoError(t, run(context.Background(), cfg, hclog.NewNullLogger()))
}
