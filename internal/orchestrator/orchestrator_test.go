// File: internal/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
	"github.com/mkeller0x/layerforge-cli/internal/analyzer"
	"github.com/mkeller0x/layerforge-cli/internal/config"
	"github.com/mkeller0x/layerforge-cli/internal/executor"
	"github.com/mkeller0x/layerforge-cli/internal/metrics"
	"github.com/mkeller0x/layerforge-cli/internal/session"
	"github.com/mkeller0x/layerforge-cli/internal/validate"
)

// rejectAllGate forces the executor's revert path for any layer that makes
// changes, regardless of what the layer produced.
type rejectAllGate struct{}

func (rejectAllGate) NotWorse(context.Context, string, string) bool { return false }

// testHarness bundles an orchestrator with the collaborators tests inspect.
type testHarness struct {
	orch  *Orchestrator
	store *metrics.Store
	cfg   *config.Config
}

func newHarness(t *testing.T, gate executor.Gate) *testHarness {
	t.Helper()
	logger := zap.NewNop()
	cfg := config.NewDefaultConfig()
	store := metrics.NewStore()
	sess := session.NewLogger(logger)

	if gate == nil {
		gate = validate.New(logger)
	}
	exec, err := executor.New(logger, gate, store, 5*time.Second)
	require.NoError(t, err)

	orch, err := New(cfg, logger, exec, analyzer.New(logger), store, sess)
	require.NoError(t, err)
	return &testHarness{orch: orch, store: store, cfg: cfg}
}

func TestNew_RejectsNilDependencies(t *testing.T) {
	_, err := New(nil, nil, nil, nil, nil, nil)
	require.Error(t, err)
}

func TestTransform_RejectsEmptyInput(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.orch.Transform(context.Background(), "", []int{1}, schemas.TransformOptions{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestTransform_RejectsOversizeInput(t *testing.T) {
	h := newHarness(t, nil)
	h.cfg.SetEngineMaxInputBytes(16)

	_, err := h.orch.Transform(context.Background(), strings.Repeat("a", 17), []int{1}, schemas.TransformOptions{})
	require.ErrorIs(t, err, ErrInputTooLarge)

	// Nothing ran: the metrics accumulator is untouched.
	assert.Zero(t, h.store.Snapshot().TotalExecutions)
}

func TestTransform_ConfigLayerWithNoMatchingPattern(t *testing.T) {
	h := newHarness(t, nil)

	result, err := h.orch.Transform(context.Background(), "var x = 1;", []int{1}, schemas.TransformOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)

	assert.Zero(t, result.SuccessfulLayers)
	assert.Equal(t, "var x = 1;", result.FinalCode)
	assert.Empty(t, result.Results[0].RevertReason)
}

func TestTransform_AddsKeysToUnkeyedListRendering(t *testing.T) {
	h := newHarness(t, nil)

	in := "const list = items.map(item => <li>{item}</li>);"
	result, err := h.orch.Transform(context.Background(), in, []int{3}, schemas.TransformOptions{})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)

	assert.True(t, result.Results[0].Success)
	assert.GreaterOrEqual(t, result.Results[0].ChangeCount, 1)
	assert.Contains(t, result.FinalCode, "key={")
	assert.NotContains(t, in, "key={")
	assert.Equal(t, 1, result.SuccessfulLayers)
}

func TestTransform_RevertedLayerDoesNotCorruptPipeline(t *testing.T) {
	h := newHarness(t, rejectAllGate{})

	in := "const s = 'say &quot;hi&quot;';"
	result, err := h.orch.Transform(context.Background(), in, []int{2, 3}, schemas.TransformOptions{})
	require.NoError(t, err, "layer failures never surface as errors")
	require.Len(t, result.Results, 2)

	assert.False(t, result.Results[0].Success)
	assert.NotEmpty(t, result.Results[0].RevertReason)
	assert.Zero(t, result.SuccessfulLayers)
	assert.Equal(t, in, result.FinalCode, "reverted layers contribute zero net change")
}

func TestTransform_DryRunPurity(t *testing.T) {
	h := newHarness(t, nil)

	in := "const el = <div>&quot;hi&quot;</div>;"
	result, err := h.orch.Transform(context.Background(), in, []int{1, 2, 3, 4, 5, 6}, schemas.TransformOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, in, result.FinalCode, "dry run returns the original input")
	assert.Equal(t, 1, result.SuccessfulLayers, "layers still execute and report under dry run")
	assert.Len(t, result.Results, 6)
}

func TestTransform_OrderInvariance(t *testing.T) {
	in := "const el = <div>&quot;hi&quot;</div>;\nconsole.log('x');\n"
	permutations := [][]int{
		{2, 3, 6},
		{6, 2, 3},
		{3, 6, 2},
	}

	type summary struct {
		layerID int
		success bool
		changes int
	}
	var baseline []summary
	for i, perm := range permutations {
		h := newHarness(t, nil)
		result, err := h.orch.Transform(context.Background(), in, perm, schemas.TransformOptions{})
		require.NoError(t, err)

		got := make([]summary, 0, len(result.Results))
		for _, r := range result.Results {
			got = append(got, summary{r.LayerID, r.Success, r.ChangeCount})
		}
		if i == 0 {
			baseline = got
			continue
		}
		assert.Equal(t, baseline, got, "permutation %v must execute in canonical order", perm)
	}
}

func TestTransform_NoOpIdempotence(t *testing.T) {
	h := newHarness(t, nil)
	all := []int{1, 2, 3, 4, 5, 6}

	clean := "const a = 1;\n"
	first, err := h.orch.Transform(context.Background(), clean, all, schemas.TransformOptions{})
	require.NoError(t, err)
	require.Zero(t, first.SuccessfulLayers)

	second, err := h.orch.Transform(context.Background(), first.FinalCode, all, schemas.TransformOptions{})
	require.NoError(t, err)
	assert.Zero(t, second.SuccessfulLayers, "clean code stays clean")
	assert.Equal(t, clean, second.FinalCode)
}

func TestTransform_MetricsMonotonicity(t *testing.T) {
	h := newHarness(t, nil)

	before := h.orch.PerformanceMetrics()
	for i := 0; i < 3; i++ {
		_, err := h.orch.Transform(context.Background(), "const a = 1;", []int{1, 2}, schemas.TransformOptions{})
		require.NoError(t, err)
	}
	after := h.orch.PerformanceMetrics()

	assert.Equal(t, before.TotalExecutions+3, after.TotalExecutions)
	assert.Equal(t, 3, after.LayerMetrics[1].Executions)
	assert.Equal(t, 3, after.LayerMetrics[2].Executions)
}

func TestTransform_VerboseDoesNotChangeResults(t *testing.T) {
	in := "const el = <div>&quot;hi&quot;</div>;"

	quiet := newHarness(t, nil)
	loud := newHarness(t, nil)

	a, err := quiet.orch.Transform(context.Background(), in, []int{2}, schemas.TransformOptions{Verbose: false})
	require.NoError(t, err)
	b, err := loud.orch.Transform(context.Background(), in, []int{2}, schemas.TransformOptions{Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, a.FinalCode, b.FinalCode)
	assert.Equal(t, a.SuccessfulLayers, b.SuccessfulLayers)
	require.Len(t, b.Results, len(a.Results))
	for i := range a.Results {
		assert.Equal(t, a.Results[i].Success, b.Results[i].Success)
		assert.Equal(t, a.Results[i].ChangeCount, b.Results[i].ChangeCount)
	}
}

func TestTransform_EmptyLayerSelectionIsANoOpPipeline(t *testing.T) {
	h := newHarness(t, nil)

	result, err := h.orch.Transform(context.Background(), "const a = 1;", nil, schemas.TransformOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Equal(t, "const a = 1;", result.FinalCode)
}

func TestAnalyze_DelegatesWithoutMetricsSideEffects(t *testing.T) {
	h := newHarness(t, nil)

	result, err := h.orch.Analyze("localStorage.getItem('x')")
	require.NoError(t, err)
	require.NotEmpty(t, result.DetectedIssues)
	assert.Contains(t, result.RecommendedLayers, 4)

	assert.Zero(t, h.store.Snapshot().TotalExecutions, "analyze must not touch pipeline metrics")
}

func TestAnalyze_RejectsEmptyInput(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.orch.Analyze("")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestExportLogs_CarriesSessionID(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.orch.Transform(context.Background(), "const a = 1;", []int{1}, schemas.TransformOptions{})
	require.NoError(t, err)

	logs := string(h.orch.ExportLogs())
	assert.Contains(t, logs, h.orch.SessionID())
	assert.Contains(t, logs, "pipeline started")
	assert.Contains(t, logs, "pipeline completed")
}
