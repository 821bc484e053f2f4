// File: cmd/components.go
// Description: Composition root for the orchestration core. Everything is
// wired here once per process: the metrics store lives for the process
// lifetime and is injected, never reached for globally.
package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/internal/analyzer"
	"github.com/mkeller0x/layerforge-cli/internal/config"
	"github.com/mkeller0x/layerforge-cli/internal/executor"
	"github.com/mkeller0x/layerforge-cli/internal/metrics"
	"github.com/mkeller0x/layerforge-cli/internal/orchestrator"
	"github.com/mkeller0x/layerforge-cli/internal/session"
	"github.com/mkeller0x/layerforge-cli/internal/validate"
)

// components bundles the wired core for command handlers.
type components struct {
	Orchestrator *orchestrator.Orchestrator
	Metrics      *metrics.Store
	Session      *session.Logger
}

// buildComponents wires the orchestration core from configuration.
func buildComponents(cfg config.Interface, logger *zap.Logger) (*components, error) {
	store := metrics.NewStore()
	sess := session.NewLogger(logger)
	gate := validate.New(logger)

	exec, err := executor.New(logger, gate, store, cfg.Engine().LayerTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to build executor: %w", err)
	}

	orch, err := orchestrator.New(cfg, logger, exec, analyzer.New(logger), store, sess)
	if err != nil {
		return nil, fmt.Errorf("failed to build orchestrator: %w", err)
	}

	return &components{
		Orchestrator: orch,
		Metrics:      store,
		Session:      sess,
	}, nil
}
