// File: api/schemas/analysis.go
package schemas

// Severity classifies how badly a detected issue degrades the code.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight maps a severity onto the scalar used by the analyzer's confidence
// formula. Unknown severities weigh nothing.
func (s Severity) Weight() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	}
	return 0
}

// AtLeast reports whether s is as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Weight() >= other.Weight()
}

// DetectedIssue is a single static-analysis finding, mapped to exactly one
// layer capable of fixing it.
type DetectedIssue struct {
	Pattern      string   `json:"pattern"`
	Severity     Severity `json:"severity"`
	Description  string   `json:"description"`
	FixedByLayer int      `json:"fixed_by_layer"`
}

// EstimatedImpact is the coarse "what will fixing this buy you" summary.
type EstimatedImpact struct {
	Level            Severity `json:"level"`
	EstimatedFixTime string   `json:"estimated_fix_time"`
}

// AnalysisResult is the full read-only recommendation produced by one
// Analyze call. Identical input always yields an identical result.
type AnalysisResult struct {
	DetectedIssues    []DetectedIssue `json:"detected_issues"`
	RecommendedLayers []int           `json:"recommended_layers"`
	Confidence        float64         `json:"confidence"`
	Reasoning         []string        `json:"reasoning"`
	EstimatedImpact   EstimatedImpact `json:"estimated_impact"`
}
