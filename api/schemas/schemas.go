// File: api/schemas/schemas.go
// Description: Shared data shapes exchanged between the orchestration core and
// its consumers. These types are plain values; nothing here holds behavior.
package schemas

// TransformOptions carries the caller-facing switches for a single pipeline run.
type TransformOptions struct {
	// Verbose widens session logging; it never changes the result contents.
	Verbose bool `json:"verbose"`
	// DryRun executes and reports every layer but returns the original input
	// as the final code. The "no changes without review" contract.
	DryRun bool `json:"dry_run"`
}

// TransformOutput is what a single layer returns from its pure transform.
// A layer reporting ChangeCount == 0 must return its input byte for byte;
// the executor enforces this rather than trusting it.
type TransformOutput struct {
	Code         string   `json:"code"`
	ChangeCount  int      `json:"change_count"`
	Improvements []string `json:"improvements"`
}

// LayerExecutionResult records one attempted layer, in execution order.
// If RevertReason is set, Success is false and the code handed to the next
// layer equals the code this layer received.
type LayerExecutionResult struct {
	LayerID       int      `json:"layer_id"`
	Success       bool     `json:"success"`
	Error         string   `json:"error,omitempty"`
	RevertReason  string   `json:"revert_reason,omitempty"`
	ExecutionTime float64  `json:"execution_time_ms"`
	ChangeCount   int      `json:"change_count"`
	Improvements  []string `json:"improvements,omitempty"`
}

// OrchestrationResult is the aggregate report for one Transform call.
// FinalCode equals the input transformed by exactly the accepted layers,
// applied in ascending id order; reverted layers contribute nothing.
type OrchestrationResult struct {
	Results            []LayerExecutionResult `json:"results"`
	SuccessfulLayers   int                    `json:"successful_layers"`
	TotalExecutionTime float64                `json:"total_execution_time_ms"`
	FinalCode          string                 `json:"final_code"`
}

// LayerDescriptor describes one registered layer for UI/CLI enumeration.
// The id is globally unique and doubles as the fixed execution order.
type LayerDescriptor struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
