package background

import (
	"context"
	"log/slog"
	"time"
)

// ViewRepairer reseeds derived cache views still marked dirty.
type ViewRepairer interface {
	RepairDirtyViews(ctx context.Context) (int, error)
}

// HealthSetter receives probe outcomes per service name.
type HealthSetter interface {
	SetServing(service string, serving bool)
}

// Probe pings one dependency. Services lists the health names that follow
// its result.
type Probe struct {
	Name     string
	Services []string
	Ping     func(ctx context.Context) error
}

type BackgroundTasks struct {
	Repairer ViewRepairer
	Health   HealthSetter
	Probes   []Probe

	RepairInterval time.Duration
	HealthInterval time.Duration
	ProbeTimeout   time.Duration
}

func NewBackgroundTasks(repairer ViewRepairer, health HealthSetter, repairInterval, healthInterval time.Duration, probes ...Probe) *BackgroundTasks {
	return &BackgroundTasks{
		Repairer:       repairer,
		Health:         health,
		Probes:         probes,
		RepairInterval: repairInterval,
		HealthInterval: healthInterval,
		ProbeTimeout:   2 * time.Second,
	}
}

// StartAll runs every task until ctx is cancelled. The health probe runs
// once immediately so the server does not wait a full interval to report.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	bt.ProbeOnce(ctx)
	go bt.startDirtyViewRepair(ctx)
	go bt.startHealthProbe(ctx)
}

func (bt *BackgroundTasks) startDirtyViewRepair(ctx context.Context) {
	ticker := time.NewTicker(bt.RepairInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.RepairOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) startHealthProbe(ctx context.Context) {
	ticker := time.NewTicker(bt.HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.ProbeOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) RepairOnce(ctx context.Context) {
	repaired, err := bt.Repairer.RepairDirtyViews(ctx)
	if err != nil {
		slog.Warn("dirty view repair incomplete", "repaired", repaired, "error", err)
		return
	}
	if repaired > 0 {
		slog.Info("dirty views repaired", "repaired", repaired)
	}
}

func (bt *BackgroundTasks) ProbeOnce(ctx context.Context) {
	for _, probe := range bt.Probes {
		pingCtx, cancel := context.WithTimeout(ctx, bt.ProbeTimeout)
		err := probe.Ping(pingCtx)
		cancel()

		if err != nil {
			slog.Warn("health probe failed", "probe", probe.Name, "error", err)
		}
		for _, service := range probe.Services {
			bt.Health.SetServing(service, err == nil)
		}
	}
}
