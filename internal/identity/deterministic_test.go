package identity

import (
	"regexp"
	"testing"
)

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

func TestTokenMatchesKnownDigests(t *testing.T) {
	quizID := QuizID("python/arrays-quiz.md")
	if quizID != "4345b63606bb56156a26f68b" {
		t.Fatalf("unexpected quiz id %q", quizID)
	}
	questionID := QuestionID(quizID, 0, "What is an array?")
	if questionID != "6a1ec7f51520b333dbdbb3c3" {
		t.Fatalf("unexpected question id %q", questionID)
	}
}

func TestTokenIsDeterministic(t *testing.T) {
	first := Token("question", "abc", 3, "Heading")
	second := Token("question", "abc", 3, "Heading")
	if first != second {
		t.Fatalf("expected identical tokens, got %q and %q", first, second)
	}
	if !tokenPattern.MatchString(first) {
		t.Fatalf("token %q is not 24 lowercase hex characters", first)
	}
}

func TestTokenSeparatesParts(t *testing.T) {
	if Token("ab", "c") == Token("a", "bc") {
		t.Fatalf("expected part boundaries to change the token")
	}
	if Token("ab", "c") != "ba748e9f4a26dae9881e58e0" {
		t.Fatalf("unexpected token for (ab, c)")
	}
}

func TestTokenCoercesFalsyParts(t *testing.T) {
	want := "711c9640078863a4237f9a13"
	cases := map[string]string{
		"nil":   Token("x", nil, "y"),
		"empty": Token("x", "", "y"),
		"zero":  Token("x", 0, "y"),
		"false": Token("x", false, "y"),
	}
	for name, got := range cases {
		if got != want {
			t.Fatalf("%s: expected %q, got %q", name, want, got)
		}
	}
	if Token("x", "y") == want {
		t.Fatalf("dropping a part must change the token")
	}
}

func TestSetIDIgnoresLanguageCase(t *testing.T) {
	if SetID("quiz", "FR") != SetID("quiz", "fr") {
		t.Fatalf("expected set id to lowercase the language")
	}
	if SetID("quiz", "fr") == SetID("quiz", "en") {
		t.Fatalf("expected distinct set ids per language")
	}
}

func TestAttachmentIDDependsOnIndex(t *testing.T) {
	if AttachmentID("quiz", 1, "a.png") == AttachmentID("quiz", 2, "a.png") {
		t.Fatalf("expected block index to feed the attachment id")
	}
}

func TestDuplicateSetIDDiffersFromSetID(t *testing.T) {
	quiz := QuizID("python/arrays-quiz.md")
	if DuplicateSetID(quiz, "en", 2) == SetID(quiz, "en") {
		t.Fatal("duplicate set id must differ from the language set id")
	}
	if DuplicateSetID(quiz, "EN", 2) != DuplicateSetID(quiz, "en", 2) {
		t.Fatal("duplicate set id must ignore language case")
	}
	if DuplicateSetID(quiz, "en", 2) == DuplicateSetID(quiz, "en", 3) {
		t.Fatal("duplicate set id must depend on the ordinal")
	}
}
