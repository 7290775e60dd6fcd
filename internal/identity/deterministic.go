package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// TokenLength is the number of hex characters kept from the digest.
const TokenLength = 24

const separator = '|'

// Token derives a content-addressed identifier from an ordered tuple of parts.
//
// Each part is rendered to a string and written to the digest followed by a
// separator byte, so ("ab", "c") and ("a", "bc") never collide. Nil, false,
// zero and empty values are kept as empty strings to preserve arity.
func Token(parts ...any) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(render(part)))
		h.Write([]byte{separator})
	}
	return hex.EncodeToString(h.Sum(nil))[:TokenLength]
}

func render(part any) string {
	switch v := part.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "True"
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// QuizID identifies the quiz compiled from a single source path.
func QuizID(sourcePath string) string {
	return Token("quiz", strings.TrimSpace(sourcePath))
}

// DirectoryQuizID identifies a consolidated quiz that carries no embedded id.
func DirectoryQuizID(dir string) string {
	return Token("quizz", strings.TrimSpace(dir))
}

// SetID identifies one language rendition of a quiz.
func SetID(quizID, language string) string {
	return Token("set", quizID, strings.ToLower(strings.TrimSpace(language)))
}

// DuplicateSetID identifies the ordinal-th (2 or more) set of a quiz that
// resolves to an already used language.
func DuplicateSetID(quizID, language string, ordinal int) string {
	return Token("set", quizID, strings.ToLower(strings.TrimSpace(language)), ordinal)
}

// QuestionID identifies a question by quiz, block position and heading.
func QuestionID(quizID string, index int, heading string) string {
	return Token("question", quizID, index, heading)
}

// AttachmentID identifies an attachment by quiz, block position and raw reference.
func AttachmentID(quizID string, index int, rawURL string) string {
	return Token("attachment", quizID, index, rawURL)
}
