package markdown

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-quizz/internal/identity"
	"github.com/goliatone/go-quizz/internal/locale"
	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// ErrInvalidEncoding is returned for sources that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("markdown compiler: source is not valid UTF-8")

// CompilerOptions configures a Compiler.
type CompilerOptions struct {
	// CreatedByID is the owner stamped on quizzes whose frontmatter does not
	// name one.
	CreatedByID string
	// Now supplies the generation timestamp. Defaults to time.Now in UTC.
	Now func() time.Time
	// Resolver infers the document language from the file name. Defaults to
	// locale.Loose().
	Resolver *locale.Resolver
}

// Compiler turns one quiz markdown source into a single-locale document.
type Compiler struct {
	createdByID string
	now         func() time.Time
	resolver    locale.Resolver
}

var _ interfaces.QuizCompiler = (*Compiler)(nil)

// NewCompiler constructs a Compiler from options.
func NewCompiler(opts CompilerOptions) *Compiler {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	resolver := locale.Loose()
	if opts.Resolver != nil {
		resolver = *opts.Resolver
	}
	return &Compiler{
		createdByID: strings.TrimSpace(opts.CreatedByID),
		now:         now,
		resolver:    resolver,
	}
}

// Compile parses source, whose slash separated path is relative to the scan
// root. Structural problems become warnings on the returned document; only
// undecodable sources fail.
func (c *Compiler) Compile(source []byte, sourcePath string) (*interfaces.QuizDocument, error) {
	sourcePath = cleanSourcePath(sourcePath)

	if !utf8.Valid(source) {
		return nil, quizerr.SourceMalformed(ErrInvalidEncoding, sourcePath)
	}

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, quizerr.SourceMalformed(err, sourcePath)
	}

	outline := ParseBlocks(string(body))

	quizID := identity.QuizID(sourcePath)
	language := c.resolver.Resolve("", path.Base(sourcePath))
	setID := identity.SetID(quizID, language)
	relDir := path.Dir(sourcePath)
	if relDir == "." {
		relDir = ""
	}

	questions := make([]interfaces.Question, 0, len(outline.Blocks))
	warnings := []string{}
	for idx, block := range outline.Blocks {
		question := ParseQuestion(block, QuestionScope{
			QuizID: quizID,
			SetID:  setID,
			RelDir: relDir,
			Index:  idx,
		})
		warnings = append(warnings, questionWarnings(idx, question)...)
		questions = append(questions, question)
	}

	return &interfaces.QuizDocument{
		Quiz: interfaces.QuizRecord{
			ID:          quizID,
			Title:       title(outline, meta, sourcePath),
			Description: description(outline, meta, sourcePath),
			CreatedByID: c.owner(meta),
			Questions:   questions,
		},
		Meta: interfaces.DocumentMeta{
			Source:      sourcePath,
			Language:    language,
			GeneratedAt: c.now(),
			Warnings:    warnings,
		},
	}, nil
}

func questionWarnings(idx int, question interfaces.Question) []string {
	var warnings []string
	if len(question.CorrectAnswer) == 0 {
		warnings = append(warnings, fmt.Sprintf("Question %d has no marked correct answers", idx+1))
	}
	if len(question.Options) == 0 {
		warnings = append(warnings, fmt.Sprintf("Question %d has no options", idx+1))
	}
	return warnings
}

func title(outline Outline, meta interfaces.FrontMatter, sourcePath string) string {
	if outline.Title != "" {
		return outline.Title
	}
	if meta.Title != "" {
		return meta.Title
	}
	first, _, _ := strings.Cut(sourcePath, "/")
	return HumanizeSegment(first)
}

func description(outline Outline, meta interfaces.FrontMatter, sourcePath string) string {
	if intro := strings.TrimSpace(strings.Join(outline.Intro, " ")); intro != "" {
		return intro
	}
	if meta.Description != "" {
		return meta.Description
	}
	return "Seeded from " + sourcePath
}

func (c *Compiler) owner(meta interfaces.FrontMatter) string {
	if meta.CreatedByID != "" {
		return meta.CreatedByID
	}
	return c.createdByID
}

func cleanSourcePath(sourcePath string) string {
	return strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(sourcePath), "\\", "/"), "./")
}
