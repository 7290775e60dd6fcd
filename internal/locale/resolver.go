// Package locale infers the language code of a quiz document.
package locale

import (
	"path"
	"regexp"
	"strings"
)

// DefaultLocale is returned when neither the explicit value nor the file name
// yields a language.
const DefaultLocale = "en"

// DefaultKnown is the allow list accepted for explicit values and strict
// file name suffixes.
var DefaultKnown = []string{"en", "fr", "es", "it", "ch", "de", "ua", "hi", "ptbr", "tr", "pt", "ja", "vi"}

var quizSuffixPattern = regexp.MustCompile(`(?i)-quiz[-.]([a-z]{2}(?:-[a-z]{2})?)`)

// Resolver picks a language for a document. Strict resolvers only accept
// codes present in Known, both for explicit values and for the trailing
// `-<code>` stem suffix. Loose resolvers read `-quiz-<code>` or
// `-quiz.<code>` anywhere in the file name and accept any two letter code
// with an optional region.
type Resolver struct {
	Strict bool
	Known  []string
}

// Loose returns the resolver used while compiling markdown sources.
func Loose() Resolver {
	return Resolver{Known: DefaultKnown}
}

// Strict returns the resolver used while consolidating compiled documents.
func Strict() Resolver {
	return Resolver{Strict: true, Known: DefaultKnown}
}

// Resolve returns the lowercase language for the explicit value and file
// name, falling back to DefaultLocale. Only the base name of filename is
// used, without its extension.
func (r Resolver) Resolve(explicit, filename string) string {
	if code := strings.ToLower(strings.TrimSpace(explicit)); code != "" && r.known(code) {
		return code
	}

	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		return DefaultLocale
	}

	stem := strings.TrimSuffix(base, path.Ext(base))
	if r.Strict {
		idx := strings.LastIndex(stem, "-")
		if idx < 0 {
			return DefaultLocale
		}
		if code := strings.ToLower(stem[idx+1:]); r.known(code) {
			return code
		}
		return DefaultLocale
	}

	if match := quizSuffixPattern.FindStringSubmatch(stem); match != nil {
		return strings.ToLower(match[1])
	}
	return DefaultLocale
}

func (r Resolver) known(code string) bool {
	known := r.Known
	if len(known) == 0 {
		known = DefaultKnown
	}
	for _, candidate := range known {
		if strings.EqualFold(candidate, code) {
			return true
		}
	}
	return false
}
