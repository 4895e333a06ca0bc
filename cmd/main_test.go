package main

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shoenig/test/must"

	"github.com/krisalay/expiring-map/config"
)

func TestRun(t *testing.T) {
	for _, ttl := range []time.Duration{0, 2 * time.Second, time.Hour} {
		cfg := config.Default()
		cfg.TTL = ttl
		must.NoError(t, run(cfg, hclog.NewNullLogger()))
	}
}

func TestRun_NegativeTTL(t *testing.T) {
	cfg := config.Default()
	cfg.TTL = -time.Second
	must.Error(t, run(cfg, hclog.NewNullLogger()))
}
