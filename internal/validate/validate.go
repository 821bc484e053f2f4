// File: internal/validate/validate.go
// Description: Structural validation gate for layer output. The pipeline
// operates on JavaScript/JSX source, so a layer's output is checked by
// parsing it with tree-sitter and comparing its error count against the
// input's: a layer may not make the code structurally worse.
package validate

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"go.uber.org/zap"
)

// Validator parses candidate code and decides whether a transformation is
// structurally acceptable.
type Validator struct {
	logger *zap.Logger
}

// New creates a Validator.
func New(logger *zap.Logger) *Validator {
	return &Validator{logger: logger.Named("validator")}
}

// ErrorCount parses code as JavaScript/JSX and returns the number of ERROR
// nodes in the resulting tree. Zero means structurally clean.
func (v *Validator) ErrorCount(ctx context.Context, code string) (int, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return 0, err
	}
	defer tree.Close()

	return countErrors(tree.RootNode()), nil
}

// NotWorse reports whether candidate parses at least as cleanly as original.
// Input that was already broken stays comparable: a layer working on a code
// fragment is accepted as long as it introduces no new parse errors.
func (v *Validator) NotWorse(ctx context.Context, original, candidate string) bool {
	before, err := v.ErrorCount(ctx, original)
	if err != nil {
		v.logger.Warn("Failed to parse original input; rejecting candidate", zap.Error(err))
		return false
	}
	after, err := v.ErrorCount(ctx, candidate)
	if err != nil {
		v.logger.Warn("Failed to parse candidate output", zap.Error(err))
		return false
	}
	if after > before {
		v.logger.Debug("Candidate introduces new parse errors",
			zap.Int("errors_before", before),
			zap.Int("errors_after", after),
		)
		return false
	}
	return true
}

func countErrors(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	count := 0
	if node.IsError() || node.IsMissing() {
		count++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		count += countErrors(node.Child(i))
	}
	return count
}
