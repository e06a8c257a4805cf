package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("coursewatch.perf")

var (
	cpuGauge, _         = meter.Float64Gauge("cpu_usage")
	heapGauge, _        = meter.Int64Gauge("allocated_mb")
	liveObjectsGauge, _ = meter.Int64Gauge("live_objects")
	goroutineGauge, _   = meter.Int64Gauge("goroutine_count")
)

const perfSampleInterval = time.Second * 30

// InstrumentPerfStats records process-level gauges (cpu, heap, live
// objects, goroutine count) until ctx is cancelled. Long scrape passes
// are where resource leaks show up, so this runs for the lifetime of a
// crawl.
func InstrumentPerfStats(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(perfSampleInterval)
		defer ticker.Stop()

		var memStats runtime.MemStats
		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)
				heapGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
				liveObjectsGauge.Record(ctx, int64(memStats.Mallocs-memStats.Frees))
				goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))

				// averaged over a minute, so cpu readings lag the
				// other gauges by one window
				usage, err := cpu.PercentWithContext(ctx, time.Minute, false)
				if err != nil || len(usage) == 0 {
					slog.WarnContext(ctx, "failed to read cpu usage", "err", err)
					continue
				}
				cpuGauge.Record(ctx, usage[0])
			case <-ctx.Done():
				return
			}
		}
	}()
}
