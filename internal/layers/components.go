// File: internal/layers/components.go
package layers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// unkeyedMapRe matches a JSX element returned directly from a .map callback:
// `.map(item => <li ...>` or `.map((item, i) => (<Card ...>`. Attribute
// matching is intentionally shallow (single-level braces and quoted strings);
// deeply nested expressions are left for a human.
var unkeyedMapRe = regexp.MustCompile(
	`\.map\(\s*(?:\(\s*([A-Za-z_]\w*)\s*(?:,\s*([A-Za-z_]\w*)\s*)?\)|([A-Za-z_]\w*))\s*=>\s*(\(\s*)?<([A-Za-z][\w.]*)((?:[^<>{}"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?)(\s*/?)>`)

// Components repairs structural problems in JSX: list items rendered from
// .map without a key prop get one, introducing an index parameter when the
// callback does not already have one.
func Components(_ context.Context, code string, _ schemas.TransformOptions) (schemas.TransformOutput, error) {
	return runRules(code, []rule{
		{label: "added missing key props to mapped elements", apply: addMissingKeys},
	}), nil
}

func addMissingKeys(code string) (string, int) {
	count := 0
	out := unkeyedMapRe.ReplaceAllStringFunc(code, func(match string) string {
		m := unkeyedMapRe.FindStringSubmatch(match)
		item := m[1]
		if item == "" {
			item = m[3]
		}
		indexVar := m[2]
		attrs := m[6]

		if strings.Contains(attrs, "key=") {
			return match
		}
		if indexVar == "" {
			indexVar = "index"
		}

		count++
		var b strings.Builder
		b.WriteString(".map((")
		b.WriteString(item)
		b.WriteString(", ")
		b.WriteString(indexVar)
		b.WriteString(") => ")
		if m[4] != "" {
			b.WriteString("(")
		}
		b.WriteString("<")
		b.WriteString(m[5])
		b.WriteString(" key={")
		b.WriteString(indexVar)
		b.WriteString("}")
		b.WriteString(attrs)
		b.WriteString(m[7])
		b.WriteString(">")
		return b.String()
	})
	if count == 0 {
		return code, 0
	}
	return out, count
}
