// File: internal/layers/config.go
package layers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

var (
	// Legacy compile targets that downstream layers assume are gone.
	legacyTargetRe = regexp.MustCompile(`"target":\s*"(?:es3|es5|ES3|ES5)"`)
	// A bare module.exports object literal, as found in next.config.js.
	moduleExportsRe = regexp.MustCompile(`module\.exports\s*=\s*\{`)
	// The long-removed appDir experiment flag.
	appDirFlagRe = regexp.MustCompile(`(?m)^\s*appDir:\s*true,?\s*\n`)
)

// Config modernizes compiler and framework configuration embedded in the
// source text. It runs first: later layers assume its normalizations.
func Config(_ context.Context, code string, _ schemas.TransformOptions) (schemas.TransformOutput, error) {
	return runRules(code, []rule{
		{label: "modernized compile target", apply: modernizeTarget},
		{label: "enabled react strict mode", apply: enableStrictMode},
		{label: "removed stale appDir experiment flag", apply: dropAppDirFlag},
	}), nil
}

func modernizeTarget(code string) (string, int) {
	n := len(legacyTargetRe.FindAllString(code, -1))
	if n == 0 {
		return code, 0
	}
	return legacyTargetRe.ReplaceAllString(code, `"target": "es2020"`), n
}

func enableStrictMode(code string) (string, int) {
	if strings.Contains(code, "reactStrictMode") {
		return code, 0
	}
	loc := moduleExportsRe.FindStringIndex(code)
	if loc == nil {
		return code, 0
	}
	return code[:loc[1]] + "\n  reactStrictMode: true," + code[loc[1]:], 1
}

func dropAppDirFlag(code string) (string, int) {
	n := len(appDirFlagRe.FindAllString(code, -1))
	if n == 0 {
		return code, 0
	}
	return appDirFlagRe.ReplaceAllString(code, ""), n
}
