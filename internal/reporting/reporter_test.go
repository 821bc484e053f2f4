// File: internal/reporting/reporter_test.go
package reporting

import (
	"bytes"
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

func TestReport_WriteJSON(t *testing.T) {
	r := NewReport("session-123")
	r.Add(FileReport{
		File: "app/page.tsx",
		Result: &schemas.OrchestrationResult{
			SuccessfulLayers: 2,
			FinalCode:        "const a = 1;",
			Results: []schemas.LayerExecutionResult{
				{LayerID: 2, Success: true, ChangeCount: 3},
			},
		},
	})
	r.Add(FileReport{
		File: "app/layout.tsx",
		Analysis: &schemas.AnalysisResult{
			Confidence:        0.6,
			RecommendedLayers: []int{4},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "session-123", decoded.SessionID)
	require.Len(t, decoded.Files, 2)
	assert.Equal(t, "app/page.tsx", decoded.Files[0].File)
	assert.Equal(t, 2, decoded.Files[0].Result.SuccessfulLayers)
	assert.Nil(t, decoded.Files[0].Analysis)
	assert.Equal(t, []int{4}, decoded.Files[1].Analysis.RecommendedLayers)
	assert.False(t, decoded.GeneratedAt.IsZero())
}

func TestDiff_IdenticalInputsProduceNothing(t *testing.T) {
	assert.Empty(t, Diff("const a = 1;\n", "const a = 1;\n"))
}

func TestDiff_MarksChangedLines(t *testing.T) {
	original := "const a = 1;\nconsole.log(a);\nconst b = 2;\n"
	transformed := "const a = 1;\nconst b = 2;\n"

	out := Diff(original, transformed)
	assert.Contains(t, out, "-console.log(a);")
	assert.Contains(t, out, " const a = 1;")
	assert.NotContains(t, out, "+console.log")
}

func TestDiff_MarksAddedLines(t *testing.T) {
	original := "module.exports = {\n};\n"
	transformed := "module.exports = {\n  reactStrictMode: true,\n};\n"

	out := Diff(original, transformed)
	assert.Contains(t, out, "+  reactStrictMode: true,")

	var added, removed int
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	assert.Equal(t, 1, added)
	assert.Zero(t, removed)
}
