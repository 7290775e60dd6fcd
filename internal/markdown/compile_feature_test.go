package markdown

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/goliatone/go-quizz/pkg/interfaces"
)

func TestCompileFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "compile",
		ScenarioInitializer: initializeCompileScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"testdata/features/compile.feature"},
			Output:   io.Discard,
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

type compileScenario struct {
	path   string
	source string
	docs   []*interfaces.QuizDocument
}

func initializeCompileScenario(ctx *godog.ScenarioContext) {
	state := &compileScenario{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = compileScenario{}
		return ctx, nil
	})

	ctx.Step(`^a quiz source at "([^"]+)":$`, state.givenSource)
	ctx.Step(`^the source is compiled$`, state.whenCompiled(1))
	ctx.Step(`^the source is compiled twice$`, state.whenCompiled(2))
	ctx.Step(`^the quiz title is "([^"]*)"$`, state.thenTitle)
	ctx.Step(`^the quiz description is "([^"]*)"$`, state.thenDescription)
	ctx.Step(`^question (\d+) reads "([^"]*)"$`, state.thenQuestionText)
	ctx.Step(`^question (\d+) has options "([^"]*)"$`, state.thenOptions)
	ctx.Step(`^question (\d+) has correct answers "([^"]*)"$`, state.thenCorrect)
	ctx.Step(`^question (\d+) is a "([^"]*)" question$`, state.thenNature)
	ctx.Step(`^question (\d+) has the hint "([^"]*)"$`, state.thenHint)
	ctx.Step(`^question (\d+) has no answer$`, state.thenNoAnswer)
	ctx.Step(`^question (\d+) has an attachment at "([^"]*)"$`, state.thenAttachment)
	ctx.Step(`^the document has (\d+) warnings$`, state.thenWarningCount)
	ctx.Step(`^the document warns "([^"]*)"$`, state.thenWarns)
	ctx.Step(`^both documents carry identical identifiers$`, state.thenIdenticalIDs)
}

func (s *compileScenario) givenSource(path string, body *godog.DocString) error {
	s.path = path
	s.source = body.Content
	return nil
}

func (s *compileScenario) whenCompiled(times int) func() error {
	return func() error {
		for i := 0; i < times; i++ {
			doc, err := NewCompiler(CompilerOptions{CreatedByID: "owner"}).Compile([]byte(s.source), s.path)
			if err != nil {
				return err
			}
			s.docs = append(s.docs, doc)
		}
		return nil
	}
}

func (s *compileScenario) doc() *interfaces.QuizDocument {
	return s.docs[len(s.docs)-1]
}

func (s *compileScenario) question(n int) (interfaces.Question, error) {
	questions := s.doc().Quiz.Questions
	if n < 1 || n > len(questions) {
		return interfaces.Question{}, fmt.Errorf("question %d not found, document has %d", n, len(questions))
	}
	return questions[n-1], nil
}

func (s *compileScenario) thenTitle(want string) error {
	if got := s.doc().Quiz.Title; got != want {
		return fmt.Errorf("expected title %q, got %q", want, got)
	}
	return nil
}

func (s *compileScenario) thenDescription(want string) error {
	if got := s.doc().Quiz.Description; got != want {
		return fmt.Errorf("expected description %q, got %q", want, got)
	}
	return nil
}

func (s *compileScenario) thenQuestionText(n int, want string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if q.Question != want {
		return fmt.Errorf("expected question %q, got %q", want, q.Question)
	}
	return nil
}

func (s *compileScenario) thenOptions(n int, want string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	return compareList("options", q.Options, strings.Split(want, "|"))
}

func (s *compileScenario) thenCorrect(n int, want string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	return compareList("correct answers", q.CorrectAnswer, strings.Split(want, "|"))
}

func (s *compileScenario) thenNature(n int, want string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if string(q.Nature) != want {
		return fmt.Errorf("expected nature %q, got %q", want, q.Nature)
	}
	return nil
}

func (s *compileScenario) thenHint(n int, want string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if q.Hint == nil || *q.Hint != want {
		return fmt.Errorf("expected hint %q, got %v", want, q.Hint)
	}
	return nil
}

func (s *compileScenario) thenNoAnswer(n int) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if q.Answer != nil {
		return fmt.Errorf("expected null answer, got %q", *q.Answer)
	}
	return nil
}

func (s *compileScenario) thenAttachment(n int, want string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	for _, attachment := range q.Attachments {
		if attachment.URL == want {
			return nil
		}
	}
	return fmt.Errorf("expected attachment %q in %#v", want, q.Attachments)
}

func (s *compileScenario) thenWarningCount(want int) error {
	if got := len(s.doc().Meta.Warnings); got != want {
		return fmt.Errorf("expected %d warnings, got %v", want, s.doc().Meta.Warnings)
	}
	return nil
}

func (s *compileScenario) thenWarns(want string) error {
	for _, warning := range s.doc().Meta.Warnings {
		if warning == want {
			return nil
		}
	}
	return fmt.Errorf("expected warning %q in %v", want, s.doc().Meta.Warnings)
}

func (s *compileScenario) thenIdenticalIDs() error {
	if len(s.docs) != 2 {
		return fmt.Errorf("expected two compiled documents, got %d", len(s.docs))
	}
	first, second := s.docs[0], s.docs[1]
	if first.Quiz.ID != second.Quiz.ID {
		return fmt.Errorf("quiz ids differ")
	}
	for i := range first.Quiz.Questions {
		a, b := first.Quiz.Questions[i], second.Quiz.Questions[i]
		if a.ID != b.ID || a.SetID != b.SetID {
			return fmt.Errorf("question %d ids differ", i+1)
		}
		for j := range a.Attachments {
			if a.Attachments[j].ID != b.Attachments[j].ID {
				return fmt.Errorf("attachment ids differ for question %d", i+1)
			}
		}
	}
	return nil
}

func compareList(label string, got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %s %v, got %v", label, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("expected %s %v, got %v", label, want, got)
		}
	}
	return nil
}
