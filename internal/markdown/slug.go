package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

var symbolWords = strings.NewReplacer(
	"+", " plus ",
	"#", " sharp ",
	"&", " and ",
)

var (
	nonSlugRun   = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedDash = regexp.MustCompile(`-{2,}`)
)

// Slugify renders a quiz title as a lowercase, hyphen separated slug.
// Programming language symbols are spelled out first so "C++" and "C#"
// stay distinguishable. Every other run of characters outside [a-z0-9],
// accented letters included, becomes a single hyphen.
func Slugify(text string) string {
	spelled := symbolWords.Replace(strings.ToLower(text))

	value := nonSlugRun.ReplaceAllString(spelled, "-")
	value = repeatedDash.ReplaceAllString(strings.Trim(value, "-"), "-")
	if value == "" {
		return ""
	}

	// go-slug has the final say on the shape.
	if normalized, err := slug.Normalize(value); err == nil && normalized != "" {
		return normalized
	}
	return value
}

// HumanizeSegment turns a folder name such as "python-basics" into
// "Python Basics".
func HumanizeSegment(segment string) string {
	parts := strings.FieldsFunc(segment, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
