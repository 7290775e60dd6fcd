package interfaces

import "time"

// QuestionNature classifies a question by the number of correct options.
type QuestionNature string

const (
	// NatureChooseOne marks questions with zero or one correct option.
	NatureChooseOne QuestionNature = "ChooseOne"
	// NatureChooseMany marks questions with more than one correct option.
	NatureChooseMany QuestionNature = "ChooseMany"
)

// AttachmentTypeQuestion is the only attachment role emitted today.
const AttachmentTypeQuestion = "question"

// NatureFor derives the classification from the correct answer list.
func NatureFor(correct []string) QuestionNature {
	if len(correct) > 1 {
		return NatureChooseMany
	}
	return NatureChooseOne
}

// Attachment references an image found inside a question block.
type Attachment struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Question is a single compiled question block. CorrectAnswer is always a
// subsequence of Options in authoring order.
type Question struct {
	ID            string         `json:"id"`
	Question      string         `json:"question"`
	Answer        *string        `json:"answer"`
	Explanation   *string        `json:"explanation"`
	Hint          *string        `json:"hint"`
	CorrectAnswer []string       `json:"correctAnswer"`
	Options       []string       `json:"options"`
	Nature        QuestionNature `json:"nature"`
	Attachments   []Attachment   `json:"attachments"`
	SetID         string         `json:"setId"`
	QuizID        string         `json:"quizzId"`
}

// QuizRecord is the quiz payload of a single-locale document.
type QuizRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedByID string     `json:"createdById"`
	Questions   []Question `json:"questions"`
}

// DocumentMeta records provenance for a single-locale document.
type DocumentMeta struct {
	Source      string    `json:"source"`
	Language    string    `json:"language"`
	GeneratedAt time.Time `json:"generatedAt"`
	Warnings    []string  `json:"warnings"`
}

// QuizDocument is the output of compiling one markdown source.
type QuizDocument struct {
	Quiz QuizRecord   `json:"quizz"`
	Meta DocumentMeta `json:"meta"`
}

// QuizSet is one language rendition of a consolidated quiz.
type QuizSet struct {
	ID          string     `json:"id"`
	Language    string     `json:"language"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// QuizAggregate groups every language rendition of a quiz.
type QuizAggregate struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	CreatedByID string    `json:"createdById"`
	Sets        []QuizSet `json:"sets"`
}

// AggregateMeta records provenance for a consolidated document.
type AggregateMeta struct {
	Languages   []string  `json:"languages"`
	Sources     []string  `json:"sources"`
	GeneratedAt time.Time `json:"generatedAt"`
	Warnings    []string  `json:"warnings"`
}

// ConsolidatedDocument is the multi-locale output of the merge step.
type ConsolidatedDocument struct {
	Quiz QuizAggregate `json:"quizz"`
	Meta AggregateMeta `json:"meta"`
}

// RunFailure describes one input that did not produce output.
type RunFailure struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunSummary reports the outcome of a directory run. Files counts inputs for
// compile runs and directories for consolidation runs.
type RunSummary struct {
	Files    int          `json:"files"`
	Written  int          `json:"written"`
	Skipped  int          `json:"skipped"`
	Warnings int          `json:"warnings"`
	Failed   int          `json:"failed"`
	Outputs  []string     `json:"outputs,omitempty"`
	Failures []RunFailure `json:"failures,omitempty"`
}

// Succeeded reports whether at least one input survived the run. An empty run
// (no inputs) is not a failure.
func (s RunSummary) Succeeded() bool {
	if s.Files == 0 {
		return true
	}
	return s.Failed < s.Files
}
