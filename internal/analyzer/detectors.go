// File: internal/analyzer/detectors.go
package analyzer

import (
	"regexp"
	"strings"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

// detector is one pattern check. Each detector maps to exactly one layer
// capable of fixing what it found; firing appends one DetectedIssue.
type detector struct {
	pattern     string
	severity    schemas.Severity
	description string
	layer       int
	reasoning   string
	match       func(code string) bool
}

var (
	legacyTargetRe  = regexp.MustCompile(`"target":\s*"(?:es3|es5|ES3|ES5)"`)
	entityRe        = regexp.MustCompile(`&(?:quot|amp|lt|gt|#39);`)
	consoleLogRe    = regexp.MustCompile(`\bconsole\.log\(`)
	unkeyedMapRe    = regexp.MustCompile(`\.map\(\s*(?:\([A-Za-z_][\w\s,]*\)|[A-Za-z_]\w*)\s*=>\s*\(?\s*<[A-Za-z][\w.]*(?:[^<>{}"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?>`)
	storageAccessRe = regexp.MustCompile(`(?:localStorage|sessionStorage)\.(?:get|set|remove)Item\(`)
	useClientRe     = regexp.MustCompile(`(?m)^[ \t]*['"]use client['"];?[ \t]*$`)
	bareImgRe       = regexp.MustCompile(`<img\b(?:[^<>{}"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?/?>`)
	bareButtonRe    = regexp.MustCompile(`<button\b(?:[^<>{}"']|"[^"]*"|'[^']*'|\{[^{}]*\})*?>`)
)

// battery is the fixed detector set, grouped by the layer that fixes each
// finding. Order is stable so identical input yields identical results.
var battery = []detector{
	{
		pattern:     "legacy-compile-target",
		severity:    schemas.SeverityMedium,
		description: "Compiler target is es5 or older",
		layer:       1,
		reasoning:   "Configuration targets a legacy runtime; layer 1 modernizes compile settings",
		match:       func(code string) bool { return legacyTargetRe.MatchString(code) },
	},
	{
		pattern:     "react-strict-mode-disabled",
		severity:    schemas.SeverityLow,
		description: "Framework config object does not enable reactStrictMode",
		layer:       1,
		reasoning:   "Strict mode is off in the framework config; layer 1 enables it",
		match: func(code string) bool {
			return strings.Contains(code, "module.exports") && !strings.Contains(code, "reactStrictMode")
		},
	},
	{
		pattern:     "html-entity-leak",
		severity:    schemas.SeverityMedium,
		description: "HTML entities leaked into source text",
		layer:       2,
		reasoning:   "Encoded entities corrupt string and JSX content; layer 2 decodes them",
		match:       func(code string) bool { return entityRe.MatchString(code) },
	},
	{
		pattern:     "console-log-debugging",
		severity:    schemas.SeverityLow,
		description: "Leftover console.log debugging calls",
		layer:       2,
		reasoning:   "Debug logging ships to production consoles; layer 2 strips it",
		match:       func(code string) bool { return consoleLogRe.MatchString(code) },
	},
	{
		pattern:     "unkeyed-list-rendering",
		severity:    schemas.SeverityMedium,
		description: "JSX elements rendered from .map without a key prop",
		layer:       3,
		reasoning:   "Unkeyed list rendering breaks reconciliation; layer 3 adds key props",
		match:       hasUnkeyedMap,
	},
	{
		pattern:     "unguarded-browser-storage",
		severity:    schemas.SeverityHigh,
		description: "Browser storage accessed without a window guard",
		layer:       4,
		reasoning:   "Storage access crashes server rendering; layer 4 adds typeof window guards",
		match:       hasUnguardedStorage,
	},
	{
		pattern:     "misplaced-use-client",
		severity:    schemas.SeverityMedium,
		description: "'use client' directive is duplicated or not the first statement",
		layer:       5,
		reasoning:   "A directive that is not the first statement is ignored; layer 5 hoists it",
		match:       hasMisplacedUseClient,
	},
	{
		pattern:     "img-missing-alt",
		severity:    schemas.SeverityMedium,
		description: "Image tags without alternative text",
		layer:       6,
		reasoning:   "Images without alt text fail accessibility audits; layer 6 adds empty alt",
		match: func(code string) bool {
			return anyTagMissing(code, bareImgRe, "alt=")
		},
	},
	{
		pattern:     "button-missing-type",
		severity:    schemas.SeverityLow,
		description: "Button tags without an explicit type",
		layer:       6,
		reasoning:   "Typeless buttons default to submit inside forms; layer 6 sets type",
		match: func(code string) bool {
			return anyTagMissing(code, bareButtonRe, "type=")
		},
	},
}

func hasUnkeyedMap(code string) bool {
	for _, match := range unkeyedMapRe.FindAllString(code, -1) {
		if !strings.Contains(match, "key=") {
			return true
		}
	}
	return false
}

func hasUnguardedStorage(code string) bool {
	for _, loc := range storageAccessRe.FindAllStringIndex(code, -1) {
		lineStart := strings.LastIndexByte(code[:loc[0]], '\n') + 1
		if !strings.Contains(code[lineStart:loc[0]], "typeof window") {
			return true
		}
	}
	return false
}

func hasMisplacedUseClient(code string) bool {
	matches := useClientRe.FindAllStringIndex(code, -1)
	if len(matches) == 0 {
		return false
	}
	if len(matches) > 1 {
		return true
	}
	return strings.TrimLeft(code[:matches[0][0]], " \t\r\n") != ""
}

func anyTagMissing(code string, re *regexp.Regexp, marker string) bool {
	for _, tag := range re.FindAllString(code, -1) {
		if !strings.Contains(tag, marker) {
			return true
		}
	}
	return false
}
