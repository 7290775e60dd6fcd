package consolidation

import (
	"errors"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-quizz/internal/attachments"
	"github.com/goliatone/go-quizz/internal/identity"
	"github.com/goliatone/go-quizz/internal/locale"
	"github.com/goliatone/go-quizz/internal/markdown"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// ErrNoEntries is returned when Merge is called without documents.
var ErrNoEntries = errors.New("consolidation: no documents to merge")

// Entry is one compiled document found in a quiz directory.
type Entry struct {
	// File is the document file name, used for ordering and language inference.
	File     string
	Document *interfaces.QuizDocument
}

// MergeOptions configures Merge.
type MergeOptions struct {
	// CreatedByID is used when the base document carries no owner.
	CreatedByID string
	Now         func() time.Time
	// Resolver defaults to locale.Strict().
	Resolver *locale.Resolver
	// RootName names the scan root. It seeds the slug of an untitled quiz
	// that sits directly in the root.
	RootName string
}

// Merge combines the entries of the quiz directory relDir (slash separated,
// relative to the scan root). Entries are ordered by file name and the first
// one is the base document: it provides the quiz id, slug and owner. Every
// entry yields a set, even when two entries resolve to the same language;
// later duplicates get an ordinal-qualified set id.
func Merge(relDir string, entries []Entry, opts MergeOptions) (*interfaces.ConsolidatedDocument, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].File < ordered[j].File
	})

	resolver := locale.Strict()
	if opts.Resolver != nil {
		resolver = *opts.Resolver
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	dir := cleanDir(relDir)
	base := record(ordered[0])

	quizID := strings.TrimSpace(base.ID)
	if quizID == "" {
		quizID = identity.DirectoryQuizID(dir)
	}

	slugSource := strings.TrimSpace(base.Title)
	if slugSource == "" {
		slugSource = directoryName(dir, opts.RootName)
	}

	createdBy := strings.TrimSpace(base.CreatedByID)
	if createdBy == "" {
		createdBy = strings.TrimSpace(opts.CreatedByID)
	}

	doc := &interfaces.ConsolidatedDocument{
		Quiz: interfaces.QuizAggregate{
			ID:          quizID,
			Slug:        markdown.Slugify(slugSource),
			CreatedByID: createdBy,
			Sets:        make([]interfaces.QuizSet, 0, len(ordered)),
		},
		Meta: interfaces.AggregateMeta{
			Languages:   []string{},
			Sources:     []string{},
			GeneratedAt: now(),
			Warnings:    []string{},
		},
	}

	seen := map[string]int{}
	for _, entry := range ordered {
		rec := record(entry)
		meta := entryMeta(entry)

		language := resolver.Resolve(meta.Language, entry.File)
		seen[language]++
		setID := identity.SetID(quizID, language)
		if n := seen[language]; n > 1 {
			setID = identity.DuplicateSetID(quizID, language, n)
		}

		questions := make([]interfaces.Question, 0, len(rec.Questions))
		for _, question := range rec.Questions {
			questions = append(questions, restamp(question, setID, quizID, dir))
		}

		doc.Quiz.Sets = append(doc.Quiz.Sets, interfaces.QuizSet{
			ID:          setID,
			Language:    language,
			Title:       rec.Title,
			Description: rec.Description,
			Questions:   questions,
		})

		doc.Meta.Languages = appendDistinct(doc.Meta.Languages, language)
		if source := strings.TrimSpace(meta.Source); source != "" {
			doc.Meta.Sources = appendDistinct(doc.Meta.Sources, source)
		}
		doc.Meta.Warnings = append(doc.Meta.Warnings, meta.Warnings...)
	}

	return doc, nil
}

func restamp(question interfaces.Question, setID, quizID, dir string) interfaces.Question {
	out := question
	out.SetID = setID
	out.QuizID = quizID
	out.Options = cloneStrings(question.Options)
	out.CorrectAnswer = cloneStrings(question.CorrectAnswer)
	out.Attachments = make([]interfaces.Attachment, 0, len(question.Attachments))
	for _, attachment := range question.Attachments {
		attachment.URL = attachments.Normalize(attachment.URL, dir)
		out.Attachments = append(out.Attachments, attachment)
	}
	return out
}

func record(entry Entry) interfaces.QuizRecord {
	if entry.Document == nil {
		return interfaces.QuizRecord{}
	}
	return entry.Document.Quiz
}

func entryMeta(entry Entry) interfaces.DocumentMeta {
	if entry.Document == nil {
		return interfaces.DocumentMeta{}
	}
	return entry.Document.Meta
}

func directoryName(dir, rootName string) string {
	if dir != "" {
		return path.Base(dir)
	}
	name := strings.TrimSpace(strings.ReplaceAll(rootName, "\\", "/"))
	name = path.Base(strings.TrimRight(name, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func cleanDir(relDir string) string {
	dir := strings.Trim(strings.ReplaceAll(strings.TrimSpace(relDir), "\\", "/"), "/")
	if dir == "" || dir == "." {
		return ""
	}
	return path.Clean(dir)
}

func appendDistinct(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
