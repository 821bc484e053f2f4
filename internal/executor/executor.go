// File: internal/executor/executor.go
// Description: Runs a single layer against the current code state inside a
// failure boundary: panics, errors, timeouts and structurally invalid output
// all resolve to a revert, so a misbehaving layer can never corrupt the
// pipeline for downstream layers or the caller.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
	"github.com/mkeller0x/layerforge-cli/internal/registry"
)

// RevertInvalidOutput is the revert reason for output that failed the
// validation gate, including inconsistent zero-change claims.
const RevertInvalidOutput = "invalid-output"

// RevertTimeout is the revert reason for a layer that did not return within
// the configured bound.
const RevertTimeout = "timeout"

// Recorder receives one timing sample per attempted layer.
type Recorder interface {
	RecordLayer(layerID int, duration time.Duration)
}

// Gate decides whether a layer's output is structurally acceptable.
type Gate interface {
	NotWorse(ctx context.Context, original, candidate string) bool
}

// Executor applies one layer at a time, validating and timing each attempt.
type Executor struct {
	logger  *zap.Logger
	gate    Gate
	metrics Recorder
	timeout time.Duration
}

// New creates an Executor. All dependencies are required.
func New(logger *zap.Logger, gate Gate, metrics Recorder, timeout time.Duration) (*Executor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if gate == nil {
		return nil, errors.New("validation gate cannot be nil")
	}
	if metrics == nil {
		return nil, errors.New("metrics recorder cannot be nil")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("layer timeout must be positive, got %s", timeout)
	}
	return &Executor{
		logger:  logger.Named("executor"),
		gate:    gate,
		metrics: metrics,
		timeout: timeout,
	}, nil
}

// transformOutcome carries a layer's return values across the goroutine
// boundary used for the timeout race.
type transformOutcome struct {
	output schemas.TransformOutput
	err    error
}

// Execute runs one layer against currentCode. The returned nextCode is the
// layer's output when accepted and currentCode byte-for-byte when reverted.
// Success is true only when the layer validly changed the code; a clean
// no-op pass reports Success=false with no revert reason.
func (e *Executor) Execute(ctx context.Context, layer registry.Layer, currentCode string, opts schemas.TransformOptions) (string, schemas.LayerExecutionResult) {
	result := schemas.LayerExecutionResult{LayerID: layer.ID}
	start := time.Now()

	outcome := e.runBounded(ctx, layer, currentCode, opts)

	elapsed := time.Since(start)
	result.ExecutionTime = float64(elapsed.Microseconds()) / 1000.0
	e.metrics.RecordLayer(layer.ID, elapsed)

	if outcome.err != nil {
		result.Error = outcome.err.Error()
		result.RevertReason = outcome.err.Error()
		if errors.Is(outcome.err, context.DeadlineExceeded) {
			result.RevertReason = RevertTimeout
		}
		e.logger.Warn("Layer reverted",
			zap.Int("layer_id", layer.ID),
			zap.String("layer", layer.Name),
			zap.String("reason", result.RevertReason),
		)
		return currentCode, result
	}

	output := outcome.output

	// A layer claiming zero changes must hand back its input untouched.
	if output.ChangeCount == 0 {
		if output.Code != currentCode {
			result.RevertReason = RevertInvalidOutput
			e.logger.Warn("Layer claimed no changes but altered the code",
				zap.Int("layer_id", layer.ID),
				zap.String("layer", layer.Name),
			)
			return currentCode, result
		}
		e.logger.Debug("Layer made no changes",
			zap.Int("layer_id", layer.ID),
			zap.String("layer", layer.Name),
		)
		return currentCode, result
	}

	if !e.gate.NotWorse(ctx, currentCode, output.Code) {
		result.RevertReason = RevertInvalidOutput
		e.logger.Warn("Layer output failed structural validation",
			zap.Int("layer_id", layer.ID),
			zap.String("layer", layer.Name),
			zap.Int("claimed_changes", output.ChangeCount),
		)
		return currentCode, result
	}

	result.Success = true
	result.ChangeCount = output.ChangeCount
	result.Improvements = output.Improvements
	e.logger.Debug("Layer accepted",
		zap.Int("layer_id", layer.ID),
		zap.String("layer", layer.Name),
		zap.Int("changes", output.ChangeCount),
	)
	return output.Code, result
}

// runBounded races the layer's transform against the configured timeout.
// A panicking layer is treated identically to one returning an error.
func (e *Executor) runBounded(ctx context.Context, layer registry.Layer, code string, opts schemas.TransformOptions) transformOutcome {
	tctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Buffered so a late finisher can always deliver and exit.
	ch := make(chan transformOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- transformOutcome{err: fmt.Errorf("layer panicked: %v", r)}
			}
		}()
		out, err := layer.Transform(tctx, code, opts)
		ch <- transformOutcome{output: out, err: err}
	}()

	select {
	case outcome := <-ch:
		return outcome
	case <-tctx.Done():
		return transformOutcome{err: tctx.Err()}
	}
}
