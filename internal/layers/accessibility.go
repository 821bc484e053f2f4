// File: internal/layers/accessibility.go
package layers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

var (
	imgTagRe    = regexp.MustCompile(`<img\b((?:[^<>{}"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?)(\s*/?)>`)
	buttonTagRe = regexp.MustCompile(`<button\b((?:[^<>{}"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?)(\s*/?)>`)
)

// Accessibility applies the low-risk a11y fixes an auditor flags first:
// images without alternative text and buttons without an explicit type.
func Accessibility(_ context.Context, code string, _ schemas.TransformOptions) (schemas.TransformOutput, error) {
	return runRules(code, []rule{
		{label: "added empty alt to bare img tags", apply: addImgAlt},
		{label: "added explicit type to bare buttons", apply: addButtonType},
	}), nil
}

func addImgAlt(code string) (string, int) {
	return addMissingAttr(code, imgTagRe, "alt=", `alt=""`)
}

func addButtonType(code string) (string, int) {
	return addMissingAttr(code, buttonTagRe, "type=", `type="button"`)
}

// addMissingAttr inserts attr right after the tag name of every match whose
// attribute list does not already mention marker.
func addMissingAttr(code string, re *regexp.Regexp, marker, attr string) (string, int) {
	count := 0
	out := re.ReplaceAllStringFunc(code, func(match string) string {
		m := re.FindStringSubmatch(match)
		if strings.Contains(m[1], marker) {
			return match
		}
		count++
		tagEnd := strings.IndexAny(match, " \t/>{")
		if tagEnd < 0 {
			return match
		}
		return match[:tagEnd] + " " + attr + match[tagEnd:]
	})
	if count == 0 {
		return code, 0
	}
	return out, count
}
