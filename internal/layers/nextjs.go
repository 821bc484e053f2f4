// File: internal/layers/nextjs.go
package layers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// useClientLineRe matches a whole 'use client' directive line, any quoting.
var useClientLineRe = regexp.MustCompile(`(?m)^[ \t]*['"]use client['"];?[ \t]*\r?\n?`)

// NextJS enforces directive hygiene for the App Router: a 'use client'
// directive only counts when it is the first statement of the file, so a
// misplaced one is hoisted to the top and duplicates are collapsed.
func NextJS(_ context.Context, code string, _ schemas.TransformOptions) (schemas.TransformOutput, error) {
	return runRules(code, []rule{
		{label: "hoisted use client directive", apply: hoistUseClient},
	}), nil
}

func hoistUseClient(code string) (string, int) {
	matches := useClientLineRe.FindAllStringIndex(code, -1)
	if len(matches) == 0 {
		return code, 0
	}

	// Already a single directive at the very top: nothing to do.
	if len(matches) == 1 && strings.TrimLeft(code[:matches[0][0]], " \t\r\n") == "" {
		return code, 0
	}

	stripped := useClientLineRe.ReplaceAllString(code, "")
	stripped = strings.TrimLeft(stripped, "\r\n")
	return "'use client';\n\n" + stripped, len(matches)
}
