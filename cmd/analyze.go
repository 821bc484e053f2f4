// File: cmd/analyze.go
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
	"github.com/mkeller0x/layerforge-cli/internal/observability"
)

// newAnalyzeCmd creates and configures the `analyze` command.
func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Detects issues and recommends which layers to run, without touching anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			comps, err := buildComponents(cfg, logger)
			if err != nil {
				return err
			}

			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}

				analysis, err := comps.Orchestrator.Analyze(string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				printAnalysis(file, analysis)
			}
			return nil
		},
	}
}

func printAnalysis(file string, a *schemas.AnalysisResult) {
	fmt.Printf("%s\n", file)
	if len(a.DetectedIssues) == 0 {
		fmt.Println("  no issues detected")
		return
	}

	for _, issue := range a.DetectedIssues {
		fmt.Printf("  [%s] %s (fixed by layer %d)\n", issue.Severity, issue.Description, issue.FixedByLayer)
	}
	fmt.Printf("  recommended layers: %s\n", joinInts(a.RecommendedLayers))
	fmt.Printf("  confidence: %.2f, impact: %s, estimated fix time: %s\n",
		a.Confidence, a.EstimatedImpact.Level, a.EstimatedImpact.EstimatedFixTime)
	for _, r := range a.Reasoning {
		fmt.Printf("  - %s\n", r)
	}
}

func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return strings.Join(parts, ", ")
}
