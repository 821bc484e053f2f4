// File: api/schemas/telemetry.go
package schemas

import "time"

// LayerMetric aggregates timing for one layer id across the process lifetime.
type LayerMetric struct {
	Executions  int     `json:"executions"`
	AverageTime float64 `json:"average_time_ms"`
}

// PerformanceMetrics is a point-in-time snapshot of the process-wide
// accumulator. Snapshots are copies; mutating one never touches live state.
type PerformanceMetrics struct {
	TotalExecutions      int                 `json:"total_executions"`
	SuccessfulExecutions int                 `json:"successful_executions"`
	AverageExecutionTime float64             `json:"average_execution_time_ms"`
	LayerMetrics         map[int]LayerMetric `json:"layer_metrics"`
}

// LogEvent is one structured entry in the session event log.
type LogEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	SessionID string            `json:"session_id"`
	Level     string            `json:"level"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}
