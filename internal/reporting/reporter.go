// File: internal/reporting/reporter.go
// Description: Serializes run results for consumption outside the core: a
// JSON report envelope per invocation plus inspectable per-file diffs.
package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileReport pairs one input file with its pipeline result.
type FileReport struct {
	File     string                       `json:"file"`
	Result   *schemas.OrchestrationResult `json:"result,omitempty"`
	Analysis *schemas.AnalysisResult      `json:"analysis,omitempty"`
}

// Report is the envelope written by the CLI after a run.
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	SessionID   string       `json:"session_id"`
	Files       []FileReport `json:"files"`
}

// NewReport stamps a report envelope for the given session.
func NewReport(sessionID string) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC(),
		SessionID:   sessionID,
	}
}

// Add appends one file's results to the report.
func (r *Report) Add(fr FileReport) {
	r.Files = append(r.Files, fr)
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Diff renders a line-oriented diff between the original and transformed
// code, prefixing removed lines with "-" and added lines with "+".
func Diff(original, transformed string) string {
	if original == transformed {
		return ""
	}

	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(original, transformed)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)

	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
