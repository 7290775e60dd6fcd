// Package attachments rewrites image references found in quiz questions into
// root-anchored locators of the form ~/<dir>/<path>.
package attachments

import "strings"

// RootPrefix anchors every normalized locator.
const RootPrefix = "~"

var passthroughPrefixes = []string{"http://", "https://", RootPrefix, "/"}

// Normalize rewrites a raw reference relative to relDir, the slash separated
// directory of the quiz. External, already rooted and absolute references are
// returned trimmed but otherwise unchanged; an empty reference is returned
// as given.
func Normalize(raw, relDir string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	if IsAnchored(trimmed) {
		return trimmed
	}

	clean := strings.TrimLeft(trimmed, "./")
	dir := strings.Trim(strings.ReplaceAll(relDir, "\\", "/"), "/")
	if dir == "." {
		dir = ""
	}

	locator := RootPrefix + "/" + clean
	if dir != "" {
		locator = RootPrefix + "/" + dir + "/" + clean
	}
	for strings.Contains(locator, "//") {
		locator = strings.ReplaceAll(locator, "//", "/")
	}
	return locator
}

// IsAnchored reports whether the reference needs no rewriting.
func IsAnchored(ref string) bool {
	for _, prefix := range passthroughPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}
