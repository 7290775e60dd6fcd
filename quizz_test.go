package quizz_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-quizz"
	"github.com/goliatone/go-quizz/internal/identity"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const arraysQuiz = `## Array Basics

#### 1. What is an array?
- [ ] a scalar
- [x] a collection

Hint: think contiguous memory
`

func TestCompileProducesSingleLocaleDocument(t *testing.T) {
	doc, err := quizz.Compile([]byte(arraysQuiz), "python/arrays-quiz.md", quizz.CompilerOptions{
		CreatedByID: "owner-1",
		Now:         func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if doc.Quiz.ID != "4345b63606bb56156a26f68b" {
		t.Fatalf("unexpected quiz id %q", doc.Quiz.ID)
	}
	if doc.Meta.Language != "en" || doc.Quiz.CreatedByID != "owner-1" {
		t.Fatalf("unexpected document %#v", doc.Meta)
	}
	if len(doc.Quiz.Questions) != 1 || doc.Quiz.Questions[0].ID != "6a1ec7f51520b333dbdbb3c3" {
		t.Fatalf("unexpected questions %#v", doc.Quiz.Questions)
	}
}

func TestMergeFoldsLocalesIntoSets(t *testing.T) {
	en, err := quizz.Compile([]byte(arraysQuiz), "python/arrays-quiz.md", quizz.CompilerOptions{})
	if err != nil {
		t.Fatalf("Compile en: %v", err)
	}
	fr, err := quizz.Compile([]byte(arraysQuiz), "python/arrays-quiz-fr.md", quizz.CompilerOptions{})
	if err != nil {
		t.Fatalf("Compile fr: %v", err)
	}

	merged, err := quizz.Merge("python", map[string]*quizz.QuizDocument{
		"python/arrays-quiz.json":    en,
		"python/arrays-quiz-fr.json": fr,
	}, "owner-2")
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if len(merged.Quiz.Sets) != 2 {
		t.Fatalf("expected two sets, got %d", len(merged.Quiz.Sets))
	}
	if merged.Quiz.Sets[0].Language != "fr" || merged.Quiz.Sets[1].Language != "en" {
		t.Fatalf("expected sets ordered by file name, got %s then %s", merged.Quiz.Sets[0].Language, merged.Quiz.Sets[1].Language)
	}
	if merged.Quiz.ID != fr.Quiz.ID {
		t.Fatalf("expected the base document id, got %q", merged.Quiz.ID)
	}
	if merged.Quiz.Sets[1].ID != identity.SetID(merged.Quiz.ID, "en") {
		t.Fatalf("unexpected set id %q", merged.Quiz.Sets[1].ID)
	}
}

func TestResolveLocaleAndNormalizeAttachment(t *testing.T) {
	if got := quizz.ResolveLocale("", "python/arrays-quiz-fr.json"); got != "fr" {
		t.Fatalf("expected fr, got %q", got)
	}
	if got := quizz.ResolveLocale("zz", "python/arrays-quiz.json"); got != "en" {
		t.Fatalf("expected unknown explicit values to fall back, got %q", got)
	}
	if got := quizz.NormalizeAttachment("./images/diagram.png", "python"); got != "~/python/images/diagram.png" {
		t.Fatalf("unexpected locator %q", got)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := quizz.DefaultConfig()
	cfg.Consolidation.Workers = -1

	if _, err := quizz.New(cfg); !errors.Is(err, quizz.ErrWorkersInvalid) {
		t.Fatalf("expected ErrWorkersInvalid, got %v", err)
	}
}

func TestModuleCompilesDirectory(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "python", "arrays-quiz.md")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(target, []byte(arraysQuiz), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	module, err := quizz.New(quizz.DefaultConfig(), quizz.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	summary, err := module.Compiler().CompileDirectory(context.Background(), root, quizz.CompileRunOptions{DryRun: true})
	if err != nil {
		t.Fatalf("CompileDirectory returned error: %v", err)
	}
	if summary.Files != 1 || summary.Written != 0 {
		t.Fatalf("dry run must not write, got %#v", summary)
	}
	if _, err := os.Stat(filepath.Join(root, "python", "arrays-quiz.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, got %v", err)
	}
}
