package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-quizz/internal/attachments"
	"github.com/goliatone/go-quizz/internal/identity"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const (
	titlePrefix    = "## "
	questionPrefix = "#### "
	answerJoiner   = "; "
)

var fenceMarkers = []string{"```", "~~~"}

var patterns = struct {
	option     *regexp.Regexp
	image      *regexp.Regexp
	hint       *regexp.Regexp
	enumerated *regexp.Regexp
}{
	option:     regexp.MustCompile(`^\s*[-*+]\s*\[( |x|X)\]\s*(.+)$`),
	image:      regexp.MustCompile(`!\[[^\]]*]\(([^)]+)\)`),
	hint:       regexp.MustCompile(`(?i)^hint[:\-]?\s*`),
	enumerated: regexp.MustCompile(`^(?:[A-Za-zÀ-ÿ?¿¡']*\s*)?\d+\.?\s*(.*)$`),
}

// scanState tracks which part of the document the scanner is in.
type scanState uint8

const (
	statePreamble scanState = iota
	stateQuestion
)

// blockMode tracks which part of a question block a line belongs to.
type blockMode uint8

const (
	modeBody blockMode = iota
	modeOptions
)

// Block is one question section: the text after the level-4 marker and the
// raw lines that follow it up to the next block.
type Block struct {
	Heading string
	Lines   []string
}

// Outline is the document split into its title, preamble and question blocks.
type Outline struct {
	Title    string
	HasTitle bool
	Intro    []string
	Blocks   []Block
}

// ParseBlocks segments a markdown body. The first `## ` line sets the title
// wherever it appears; `#### ` lines open blocks; lines before the first
// block form the preamble.
func ParseBlocks(body string) Outline {
	var (
		outline Outline
		state   = statePreamble
		current *Block
	)

	for _, line := range splitLines(body) {
		if !outline.HasTitle && strings.HasPrefix(line, titlePrefix) {
			outline.Title = strings.TrimSpace(strings.Replace(line, "##", "", 1))
			outline.HasTitle = true
			continue
		}

		if strings.HasPrefix(line, questionPrefix) {
			if current != nil {
				outline.Blocks = append(outline.Blocks, *current)
			}
			current = &Block{Heading: strings.TrimSpace(strings.Replace(line, "####", "", 1))}
			state = stateQuestion
			continue
		}

		switch state {
		case statePreamble:
			outline.Intro = append(outline.Intro, line)
		case stateQuestion:
			current.Lines = append(current.Lines, line)
		}
	}

	if current != nil {
		outline.Blocks = append(outline.Blocks, *current)
	}
	return outline
}

// QuestionScope carries the identifiers a parsed question is stamped with.
type QuestionScope struct {
	QuizID string
	SetID  string
	// RelDir is the slash separated directory of the source document.
	RelDir string
	// Index is the zero based block position.
	Index int
}

// ParseQuestion extracts options, answers, hint, explanation and attachments
// from a block.
func ParseQuestion(block Block, scope QuestionScope) interfaces.Question {
	var (
		bodyLines     []string
		trailingLines []string
		options       = []string{}
		correct       = []string{}
		found         = []interfaces.Attachment{}
		mode          = modeBody
		insideCode    bool
	)

	heading := StripEnumeration(block.Heading)

	for _, line := range block.Lines {
		if isFence(line) {
			insideCode = !insideCode
		}

		for _, match := range patterns.image.FindAllStringSubmatch(line, -1) {
			raw := match[1]
			found = append(found, interfaces.Attachment{
				ID:   identity.AttachmentID(scope.QuizID, scope.Index, raw),
				URL:  attachments.Normalize(raw, scope.RelDir),
				Type: interfaces.AttachmentTypeQuestion,
			})
		}

		if !insideCode {
			if match := patterns.option.FindStringSubmatch(line); match != nil {
				mode = modeOptions
				text := strings.TrimSpace(match[2])
				options = append(options, text)
				if strings.EqualFold(match[1], "x") {
					correct = append(correct, text)
				}
				continue
			}
		}

		switch mode {
		case modeBody:
			bodyLines = append(bodyLines, line)
		case modeOptions:
			trailingLines = append(trailingLines, line)
		}
	}

	hint, explanation := splitTrailing(trailingLines)

	text := heading
	if extra := joinNonBlank(bodyLines); extra != "" {
		text = heading + "\n" + extra
	}

	var answer *string
	if len(correct) > 0 {
		joined := strings.Join(correct, answerJoiner)
		answer = &joined
	}

	return interfaces.Question{
		ID:            identity.QuestionID(scope.QuizID, scope.Index, heading),
		Question:      strings.TrimSpace(text),
		Answer:        answer,
		Explanation:   explanation,
		Hint:          hint,
		CorrectAnswer: correct,
		Options:       options,
		Nature:        interfaces.NatureFor(correct),
		Attachments:   found,
		SetID:         scope.SetID,
		QuizID:        scope.QuizID,
	}
}

// StripEnumeration removes a leading "Question 3." or "2" style prefix from
// a heading. Headings that would become empty are only trimmed.
func StripEnumeration(heading string) string {
	trimmed := strings.TrimSpace(heading)
	match := patterns.enumerated.FindStringSubmatch(trimmed)
	if match == nil || match[1] == "" {
		return trimmed
	}
	return strings.TrimSpace(match[1])
}

func splitTrailing(lines []string) (hint, explanation *string) {
	var hints, explanations []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if patterns.hint.MatchString(trimmed) {
			hints = append(hints, patterns.hint.ReplaceAllString(trimmed, ""))
			continue
		}
		explanations = append(explanations, trimmed)
	}
	return optionalText(hints), optionalText(explanations)
}

func optionalText(lines []string) *string {
	joined := strings.TrimSpace(strings.Join(lines, "\n"))
	if joined == "" {
		return nil
	}
	return &joined
}

func joinNonBlank(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range fenceMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

func splitLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}
