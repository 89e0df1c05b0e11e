package reflector

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

// SystemMetrics describes the instrumented process itself: CPU share,
// resident memory and goroutine count. Served on /api/system so the
// inspector can correlate frame spikes with process-level pressure.
type SystemMetrics struct {
	CPUPercent float64 `json:"cpuPercent"`
	RSSBytes   uint64  `json:"rssBytes"`
	Goroutines int     `json:"goroutines"`
}

func collectSystemMetrics(ctx context.Context) (SystemMetrics, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("failed to open process: %w", err)
	}

	metrics := SystemMetrics{
		Goroutines: runtime.NumGoroutine(),
	}

	// Instantaneous since-start CPU percent; the inspector polls, so the
	// first reading being coarse is acceptable.
	if cpuPct, err := proc.CPUPercentWithContext(ctx); err == nil {
		metrics.CPUPercent = cpuPct
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("failed to read memory info: %w", err)
	}
	metrics.RSSBytes = memInfo.RSS

	return metrics, nil
}
