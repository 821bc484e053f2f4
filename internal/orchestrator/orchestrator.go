// File: internal/orchestrator/orchestrator.go
// Description: The façade that drives the full transformation pipeline. It
// resolves the execution order, folds the executor over the layers threading
// the code forward, and aggregates per-layer results into the run report.
// Layer failures never escape as errors; only invalid top-level input does.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
	"github.com/mkeller0x/layerforge-cli/internal/analyzer"
	"github.com/mkeller0x/layerforge-cli/internal/config"
	"github.com/mkeller0x/layerforge-cli/internal/executor"
	"github.com/mkeller0x/layerforge-cli/internal/metrics"
	"github.com/mkeller0x/layerforge-cli/internal/registry"
	"github.com/mkeller0x/layerforge-cli/internal/session"
)

// Input rejection sentinels. These are the only errors Transform and Analyze
// raise; everything layer-level is recovered into the run report.
var (
	ErrEmptyInput    = errors.New("input code is empty")
	ErrInputTooLarge = errors.New("input code exceeds the configured size ceiling")
)

// Orchestrator drives Transform and Analyze end to end.
type Orchestrator struct {
	cfg      config.Interface
	logger   *zap.Logger
	executor *executor.Executor
	analyzer *analyzer.Analyzer
	metrics  *metrics.Store
	session  *session.Logger
}

// New creates an Orchestrator with its dependencies provided explicitly.
// The metrics store is injected rather than owned so its process-wide
// lifetime is managed by the composition root.
func New(
	cfg config.Interface,
	logger *zap.Logger,
	exec *executor.Executor,
	an *analyzer.Analyzer,
	store *metrics.Store,
	sess *session.Logger,
) (*Orchestrator, error) {
	if cfg == nil || logger == nil || exec == nil || an == nil || store == nil || sess == nil {
		return nil, errors.New("cannot initialize orchestrator with nil dependencies")
	}
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger.Named("orchestrator"),
		executor: exec,
		analyzer: an,
		metrics:  store,
		session:  sess,
	}, nil
}

// Transform runs the requested layers over code in canonical ascending order
// and returns the aggregated report. It always returns a result for
// layer-level outcomes, even when every layer reverted; an error means the
// input itself was rejected and nothing ran.
func (o *Orchestrator) Transform(ctx context.Context, code string, layerIDs []int, opts schemas.TransformOptions) (*schemas.OrchestrationResult, error) {
	if err := o.checkInput(code); err != nil {
		return nil, err
	}

	order := registry.ResolveOrder(layerIDs)
	o.session.Info("pipeline started", map[string]string{
		"layers":  fmt.Sprint(layerIDs),
		"dry_run": strconv.FormatBool(opts.DryRun),
	})

	start := time.Now()
	currentCode := code
	result := &schemas.OrchestrationResult{
		Results: make([]schemas.LayerExecutionResult, 0, len(order)),
	}

	for _, layer := range order {
		nextCode, layerResult := o.executor.Execute(ctx, layer, currentCode, opts)
		result.Results = append(result.Results, layerResult)
		if layerResult.Success {
			result.SuccessfulLayers++
		}
		if opts.Verbose {
			o.session.Debug("layer finished", map[string]string{
				"layer":         layer.Name,
				"layer_id":      strconv.Itoa(layer.ID),
				"success":       strconv.FormatBool(layerResult.Success),
				"changes":       strconv.Itoa(layerResult.ChangeCount),
				"revert_reason": layerResult.RevertReason,
			})
		}
		currentCode = nextCode
	}

	result.TotalExecutionTime = float64(time.Since(start).Microseconds()) / 1000.0
	result.FinalCode = currentCode
	if opts.DryRun {
		// Every layer executed and is reported above; the caller's code is
		// handed back untouched.
		result.FinalCode = code
	}

	o.metrics.RecordPipeline(result.TotalExecutionTime, pipelineClean(result.Results))

	o.session.Info("pipeline completed", map[string]string{
		"successful_layers": strconv.Itoa(result.SuccessfulLayers),
		"attempted_layers":  strconv.Itoa(len(result.Results)),
	})
	o.logger.Info("Pipeline completed",
		zap.Int("attempted_layers", len(result.Results)),
		zap.Int("successful_layers", result.SuccessfulLayers),
		zap.Float64("total_ms", result.TotalExecutionTime),
		zap.Bool("dry_run", opts.DryRun),
	)
	return result, nil
}

// Analyze runs the static issue-detection pass. Read-only: no layer
// executes and the metrics store is untouched.
func (o *Orchestrator) Analyze(code string) (*schemas.AnalysisResult, error) {
	if err := o.checkInput(code); err != nil {
		return nil, err
	}
	return o.analyzer.Analyze(code), nil
}

// PerformanceMetrics returns a snapshot copy of the process-wide metrics.
func (o *Orchestrator) PerformanceMetrics() schemas.PerformanceMetrics {
	return o.metrics.Snapshot()
}

// ExportLogs returns the session event log as a serialized record set.
func (o *Orchestrator) ExportLogs() []byte {
	return o.session.ExportLogs()
}

// SessionID exposes the correlation id attached to exported logs.
func (o *Orchestrator) SessionID() string {
	return o.session.SessionID()
}

func (o *Orchestrator) checkInput(code string) error {
	if code == "" {
		return ErrEmptyInput
	}
	if ceiling := o.cfg.Engine().MaxInputBytes; len(code) > ceiling {
		return fmt.Errorf("%w: %d bytes > %d", ErrInputTooLarge, len(code), ceiling)
	}
	return nil
}

// pipelineClean reports whether no attempted layer was reverted. Clean
// no-op passes still count as a successful pipeline.
func pipelineClean(results []schemas.LayerExecutionResult) bool {
	for _, r := range results {
		if r.RevertReason != "" || r.Error != "" {
			return false
		}
	}
	return true
}
