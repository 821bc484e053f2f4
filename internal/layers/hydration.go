// File: internal/layers/hydration.go
package layers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// storageReadRe matches browser storage reads that explode during server
// rendering. Only simple argument lists are handled.
var storageReadRe = regexp.MustCompile(`(localStorage|sessionStorage)\.getItem\(([^()]*)\)`)

// Hydration makes browser-global access safe for server-side rendering by
// guarding storage reads behind a typeof window check. Lines that already
// carry a guard are left alone.
func Hydration(_ context.Context, code string, _ schemas.TransformOptions) (schemas.TransformOutput, error) {
	return runRules(code, []rule{
		{label: "guarded browser storage access for ssr", apply: guardStorageReads},
	}), nil
}

func guardStorageReads(code string) (string, int) {
	locs := storageReadRe.FindAllStringIndex(code, -1)
	if len(locs) == 0 {
		return code, 0
	}

	count := 0
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if isWindowGuarded(code, start) {
			continue
		}
		b.WriteString(code[last:start])
		b.WriteString(`(typeof window !== "undefined" ? `)
		b.WriteString(code[start:end])
		b.WriteString(` : null)`)
		last = end
		count++
	}
	if count == 0 {
		return code, 0
	}
	b.WriteString(code[last:])
	return b.String(), count
}

// isWindowGuarded checks whether the line containing offset already tests for
// a window object, which is how hand-written guards usually look.
func isWindowGuarded(code string, offset int) bool {
	lineStart := strings.LastIndexByte(code[:offset], '\n') + 1
	return strings.Contains(code[lineStart:offset], "typeof window")
}
