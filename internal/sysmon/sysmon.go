// Package sysmon samples host and process resource usage for the health
// report.
package sysmon

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage. Fields that could not be
// read on the current platform are left at zero.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0.0 .. 100.0, system-wide
	MemPercent float64 `json:"mem_percent"` // 0.0 .. 100.0, system-wide
	Load1      float64 `json:"load1"`
	NumCPU     int     `json:"num_cpu"`
	ProcessRSS uint64  `json:"process_rss_bytes"`
}

// Sample collects one snapshot. CPU uses interval=0, i.e. the delta since the
// previous call.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.NumCPU = n
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			s.ProcessRSS = mi.RSS
		}
	}
	return s
}
