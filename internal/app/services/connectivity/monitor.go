// Package connectivity tracks remote backend reachability so the gateway's
// auto mode can fall back to simulation when the service is down.
package connectivity

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/EquiStack/barn_client/internal/app/metrics"
	"github.com/EquiStack/barn_client/pkg/logger"
)

// Prober answers a single health probe.
type Prober interface {
	Healthy(ctx context.Context) bool
}

// Monitor probes the backend on a cron schedule and caches the last result.
// Until the first probe completes the backend is assumed reachable, so a
// freshly constructed client does not start in fallback.
type Monitor struct {
	probe     Prober
	cron      *cron.Cron
	entryID   cron.EntryID
	reachable atomic.Bool
	log       *logger.Logger
}

// New creates a monitor. spec is a cron expression; the original client
// probed with "@every 30s".
func New(probe Prober, spec string, log *logger.Logger) (*Monitor, error) {
	if probe == nil {
		return nil, fmt.Errorf("prober is required")
	}
	if spec == "" {
		spec = "@every 30s"
	}
	if log == nil {
		log = logger.NewDefault("connectivity")
	}

	m := &Monitor{probe: probe, cron: cron.New(), log: log}
	m.reachable.Store(true)

	id, err := m.cron.AddFunc(spec, m.Check)
	if err != nil {
		return nil, fmt.Errorf("invalid probe schedule %q: %w", spec, err)
	}
	m.entryID = id
	return m, nil
}

// Start begins scheduled probing.
func (m *Monitor) Start() {
	m.cron.Start()
}

// Stop halts scheduled probing. In-flight probes run to completion.
func (m *Monitor) Stop() {
	m.cron.Stop()
}

// Check runs one probe immediately and records the result.
func (m *Monitor) Check() {
	healthy := m.probe.Healthy(context.Background())
	previous := m.reachable.Swap(healthy)
	metrics.ObserveHealthProbe(healthy)
	if previous != healthy {
		if healthy {
			m.log.Info("backend reachable again")
		} else {
			m.log.Warn("backend unreachable, auto mode will fall back to simulation")
		}
	}
}

// Reachable reports the last probe result.
func (m *Monitor) Reachable() bool {
	return m.reachable.Load()
}
