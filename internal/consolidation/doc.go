// Package consolidation merges the single-locale documents that share a quiz
// directory into one multi-locale document with one set per input.
package consolidation
