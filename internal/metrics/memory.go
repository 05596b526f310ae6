// Package metrics reads Go runtime memory statistics for the health report
// and for warm-up logging.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc_bytes"` // bytes in use by application
	HeapSys      uint64 `json:"heap_sys_bytes"`   // bytes obtained from OS for heap
	Sys          uint64 `json:"sys_bytes"`        // total bytes obtained from OS
	NumGC        uint32 `json:"num_gc"`
	PauseTotalNs uint64 `json:"gc_pause_total_ns"`
	HeapObjects  uint64 `json:"heap_objects"`
	Goroutines   int    `json:"goroutines"`
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
		Goroutines:   runtime.NumGoroutine(),
	}
}

// HeapGrowth returns how many heap bytes were added between two snapshots,
// or zero if the heap shrank.
func HeapGrowth(before, after MemorySnapshot) uint64 {
	if after.HeapAlloc <= before.HeapAlloc {
		return 0
	}
	return after.HeapAlloc - before.HeapAlloc
}
