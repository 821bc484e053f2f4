// File: internal/analyzer/analyzer.go
// Description: Static issue-detection pass over input code. Pure and
// read-only: no mutation, no layer execution, no hidden state. Identical
// input always yields an identical result.
package analyzer

import (
	"sort"

	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// Analyzer runs the fixed detector battery and scores a layer
// recommendation.
type Analyzer struct {
	logger *zap.Logger
}

// New creates an Analyzer.
func New(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger.Named("analyzer")}
}

// Analyze inspects code and recommends which layers to enable.
//
// Confidence is monotone in issue count and severity: with severity weights
// low=1, medium=2, high=3 summed over all detected issues,
// confidence = min(1, 0.3 + 0.1*weight), and 0 when nothing fired.
func (a *Analyzer) Analyze(code string) *schemas.AnalysisResult {
	result := &schemas.AnalysisResult{
		DetectedIssues:    []schemas.DetectedIssue{},
		RecommendedLayers: []int{},
		Reasoning:         []string{},
		EstimatedImpact: schemas.EstimatedImpact{
			Level:            schemas.SeverityLow,
			EstimatedFixTime: fixTimeBucket(0),
		},
	}

	weight := 0
	layerSet := map[int]bool{}
	for _, d := range battery {
		if !d.match(code) {
			continue
		}
		result.DetectedIssues = append(result.DetectedIssues, schemas.DetectedIssue{
			Pattern:      d.pattern,
			Severity:     d.severity,
			Description:  d.description,
			FixedByLayer: d.layer,
		})
		result.Reasoning = append(result.Reasoning, d.reasoning)
		weight += d.severity.Weight()
		layerSet[d.layer] = true
		if d.severity.AtLeast(result.EstimatedImpact.Level) {
			result.EstimatedImpact.Level = d.severity
		}
	}

	for id := range layerSet {
		result.RecommendedLayers = append(result.RecommendedLayers, id)
	}
	sort.Ints(result.RecommendedLayers)

	if len(result.DetectedIssues) > 0 {
		result.Confidence = confidence(weight)
	}
	result.EstimatedImpact.EstimatedFixTime = fixTimeBucket(len(result.DetectedIssues))

	a.logger.Debug("Analysis complete",
		zap.Int("issues", len(result.DetectedIssues)),
		zap.Ints("recommended_layers", result.RecommendedLayers),
		zap.Float64("confidence", result.Confidence),
	)
	return result
}

func confidence(weight int) float64 {
	c := 0.3 + 0.1*float64(weight)
	if c > 1.0 {
		return 1.0
	}
	return c
}

// fixTimeBucket maps issue count onto the coarse estimate shown to users.
func fixTimeBucket(issues int) string {
	switch {
	case issues == 0:
		return "no fixes needed"
	case issues <= 2:
		return "under a minute"
	case issues <= 9:
		return "1-5 minutes"
	default:
		return "5-15 minutes"
	}
}
