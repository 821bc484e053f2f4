// File: internal/layers/layers.go
// Description: The fixed battery of code transformation layers. Each layer is
// a pure text-to-text function with a single fix intent; sequencing,
// validation and revert belong to the executor, never to the layers.
package layers

import (
	"context"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// TransformFunc is the contract every layer satisfies. Implementations must
// be pure: same code and options in, same output out, no shared state.
type TransformFunc func(ctx context.Context, code string, opts schemas.TransformOptions) (schemas.TransformOutput, error)

// rule is one named edit within a layer. apply returns the rewritten code and
// how many edits it made; a rule that makes no edits must return its input.
type rule struct {
	label string
	apply func(code string) (string, int)
}

// runRules folds a layer's rules over the code, collecting the change count
// and one improvement label per rule that fired.
func runRules(code string, rules []rule) schemas.TransformOutput {
	out := schemas.TransformOutput{Code: code, Improvements: []string{}}
	for _, r := range rules {
		next, n := r.apply(out.Code)
		if n > 0 {
			out.Code = next
			out.ChangeCount += n
			out.Improvements = append(out.Improvements, r.label)
		}
	}
	return out
}
