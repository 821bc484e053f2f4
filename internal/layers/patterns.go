// File: internal/layers/patterns.go
package layers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// Entity decode order matters: &amp; last, so "&amp;quot;" does not
// double-decode into a bare quote.
var htmlEntities = []struct{ from, to string }{
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
}

// A whole line consisting of nothing but a console.log call.
var consoleLogLineRe = regexp.MustCompile(`(?m)^[ \t]*console\.log\((?:[^()]|\([^()]*\))*\);?[ \t]*\n`)

// Patterns cleans up text-level damage: HTML entities that leaked into source
// through copy/paste or templating, and stray console.log debugging lines.
func Patterns(_ context.Context, code string, _ schemas.TransformOptions) (schemas.TransformOutput, error) {
	return runRules(code, []rule{
		{label: "decoded html entities", apply: decodeEntities},
		{label: "stripped console.log calls", apply: stripConsoleLogs},
	}), nil
}

func decodeEntities(code string) (string, int) {
	total := 0
	for _, e := range htmlEntities {
		n := strings.Count(code, e.from)
		if n == 0 {
			continue
		}
		code = strings.ReplaceAll(code, e.from, e.to)
		total += n
	}
	return code, total
}

func stripConsoleLogs(code string) (string, int) {
	n := len(consoleLogLineRe.FindAllString(code, -1))
	if n == 0 {
		return code, 0
	}
	return consoleLogLineRe.ReplaceAllString(code, ""), n
}
