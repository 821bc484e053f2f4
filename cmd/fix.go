// File: cmd/fix.go
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
	"github.com/mkeller0x/layerforge-cli/internal/observability"
	"github.com/mkeller0x/layerforge-cli/internal/registry"
	"github.com/mkeller0x/layerforge-cli/internal/reporting"
)

// newFixCmd creates and configures the `fix` command.
func newFixCmd() *cobra.Command {
	fixCmd := &cobra.Command{
		Use:   "fix [files...]",
		Short: "Runs the transformation pipeline over the given files",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("engine.file_concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			layerIDs, err := parseLayerSelection(viper.GetString("layers"))
			if err != nil {
				return err
			}
			opts := schemas.TransformOptions{
				Verbose: viper.GetBool("verbose"),
				DryRun:  viper.GetBool("dry-run"),
			}
			showDiff := viper.GetBool("diff")
			reportPath := viper.GetString("report")
			logsPath := viper.GetString("export-logs")

			comps, err := buildComponents(cfg, logger)
			if err != nil {
				return err
			}

			report := reporting.NewReport(comps.Orchestrator.SessionID())
			var reportMu sync.Mutex

			// Files are independent pipelines; run them concurrently. Layers
			// within one file still run strictly sequentially.
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(cfg.Engine().FileConcurrency)
			for _, file := range args {
				file := file
				g.Go(func() error {
					data, err := os.ReadFile(file)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", file, err)
					}

					result, err := comps.Orchestrator.Transform(gctx, string(data), layerIDs, opts)
					if err != nil {
						return fmt.Errorf("%s: %w", file, err)
					}

					if !opts.DryRun && result.FinalCode != string(data) {
						if err := os.WriteFile(file, []byte(result.FinalCode), 0o644); err != nil {
							return fmt.Errorf("failed to write %s: %w", file, err)
						}
					}

					reportMu.Lock()
					report.Add(reporting.FileReport{File: file, Result: result})
					reportMu.Unlock()

					printFixSummary(file, string(data), result, showDiff)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if reportPath != "" {
				if err := writeReport(report, reportPath); err != nil {
					return err
				}
				fmt.Printf("Report written to %s\n", reportPath)
			}
			if logsPath != "" {
				// Telemetry export is best-effort; a failure is reported but
				// does not fail the run.
				if err := os.WriteFile(logsPath, comps.Orchestrator.ExportLogs(), 0o644); err != nil {
					logger.Warn("Failed to export session logs", zap.Error(err))
				} else {
					fmt.Printf("Session logs written to %s\n", logsPath)
				}
			}

			snap := comps.Orchestrator.PerformanceMetrics()
			logger.Info("Run metrics",
				zap.Int("pipelines", snap.TotalExecutions),
				zap.Int("clean_pipelines", snap.SuccessfulExecutions),
				zap.Float64("avg_pipeline_ms", snap.AverageExecutionTime),
			)
			return nil
		},
	}

	fixCmd.Flags().String("layers", "all", "comma-separated layer ids to run, or 'all'")
	fixCmd.Flags().Bool("dry-run", false, "execute and report all layers but leave files untouched")
	fixCmd.Flags().BoolP("verbose", "v", false, "log every layer outcome to the session log")
	fixCmd.Flags().Bool("diff", false, "print a line diff of accepted changes per file")
	fixCmd.Flags().String("report", "", "write a JSON run report to this path")
	fixCmd.Flags().String("export-logs", "", "write the session event log to this path")
	fixCmd.Flags().Int("concurrency", 4, "how many files to transform in flight")
	return fixCmd
}

func printFixSummary(file, original string, result *schemas.OrchestrationResult, showDiff bool) {
	fmt.Printf("%s: %d/%d layers applied", file, result.SuccessfulLayers, len(result.Results))
	changes := 0
	for _, r := range result.Results {
		changes += r.ChangeCount
		if r.RevertReason != "" {
			fmt.Printf("\n  layer %d reverted: %s", r.LayerID, r.RevertReason)
		}
	}
	fmt.Printf(", %d changes\n", changes)

	if showDiff {
		if d := reporting.Diff(original, result.FinalCode); d != "" {
			fmt.Println(d)
		}
	}
}

func writeReport(report *reporting.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	return report.WriteJSON(f)
}

// parseLayerSelection turns the --layers flag into layer ids. Unknown ids
// are not an error here; the resolver drops them silently.
func parseLayerSelection(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		descs := registry.Descriptors()
		ids := make([]int, 0, len(descs))
		for _, d := range descs {
			ids = append(ids, d.ID)
		}
		return ids, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid layer id %q", p)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
