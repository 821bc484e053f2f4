// File: internal/metrics/metrics.go
// Description: Process-wide running statistics over executed pipelines. The
// store is constructed once at the composition root and handed to the
// orchestrator; there is no package-level singleton. Updates are small and
// serialized behind a mutex, reads hand out deep copies.
package metrics

import (
	"sync"
	"time"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// Store accumulates pipeline and per-layer timing for the process lifetime.
// It is never reset except by process restart and carries no persistence
// guarantee across restarts.
type Store struct {
	mu sync.Mutex

	totalExecutions      int
	successfulExecutions int
	totalPipelineTime    float64

	layerExecutions map[int]int
	layerTotalTime  map[int]float64
}

// NewStore creates an empty metrics store.
func NewStore() *Store {
	return &Store{
		layerExecutions: make(map[int]int),
		layerTotalTime:  make(map[int]float64),
	}
}

// RecordLayer adds one timing sample for an attempted layer, whether it was
// accepted or reverted. Per-layer accept/revert outcomes live in the run
// report; the aggregate only tracks attempts and timing.
func (s *Store) RecordLayer(layerID int, duration time.Duration) {
	ms := float64(duration.Microseconds()) / 1000.0

	s.mu.Lock()
	defer s.mu.Unlock()
	s.layerExecutions[layerID]++
	s.layerTotalTime[layerID] += ms
}

// RecordPipeline accounts one completed Transform call.
func (s *Store) RecordPipeline(totalTime float64, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalExecutions++
	if success {
		s.successfulExecutions++
	}
	s.totalPipelineTime += totalTime
}

// Snapshot returns a copy of the current metrics. Callers may mutate the
// returned value freely; internal state is untouched.
func (s *Store) Snapshot() schemas.PerformanceMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := schemas.PerformanceMetrics{
		TotalExecutions:      s.totalExecutions,
		SuccessfulExecutions: s.successfulExecutions,
		LayerMetrics:         make(map[int]schemas.LayerMetric, len(s.layerExecutions)),
	}
	if s.totalExecutions > 0 {
		out.AverageExecutionTime = s.totalPipelineTime / float64(s.totalExecutions)
	}
	for id, n := range s.layerExecutions {
		m := schemas.LayerMetric{Executions: n}
		if n > 0 {
			m.AverageTime = s.layerTotalTime[id] / float64(n)
		}
		out.LayerMetrics[id] = m
	}
	return out
}
