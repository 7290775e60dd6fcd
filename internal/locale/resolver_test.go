package locale

import "testing"

func TestLooseResolverReadsQuizSuffix(t *testing.T) {
	resolver := Loose()
	cases := []struct {
		file string
		want string
	}{
		{"python/python-quiz.md", "en"},
		{"python/python-quiz-fr.md", "fr"},
		{"python/python-quiz.ES.md", "es"},
		{"python/python-quiz-pt-BR.md", "pt-br"},
		{"python/python-quiz-xx.md", "xx"},
		{"python/notes.md", "en"},
	}
	for _, tc := range cases {
		if got := resolver.Resolve("", tc.file); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.file, tc.want, got)
		}
	}
}

func TestStrictResolverPrefersKnownExplicitValue(t *testing.T) {
	resolver := Strict()
	if got := resolver.Resolve(" FR ", "python-quiz-de.json"); got != "fr" {
		t.Fatalf("expected explicit fr, got %q", got)
	}
	if got := resolver.Resolve("klingon", "python-quiz-de.json"); got != "de" {
		t.Fatalf("expected stem suffix de, got %q", got)
	}
}

func TestStrictResolverRequiresAllowList(t *testing.T) {
	resolver := Strict()
	if got := resolver.Resolve("", "python-quiz-xx.json"); got != DefaultLocale {
		t.Fatalf("expected default for unknown suffix, got %q", got)
	}
	if got := resolver.Resolve("", "python-quiz-PTBR.json"); got != "ptbr" {
		t.Fatalf("expected ptbr, got %q", got)
	}
	if got := resolver.Resolve("", "python-quiz.json"); got != DefaultLocale {
		t.Fatalf("expected default without suffix, got %q", got)
	}
}

func TestResolverCustomAllowList(t *testing.T) {
	resolver := Resolver{Strict: true, Known: []string{"nl"}}
	if got := resolver.Resolve("nl", ""); got != "nl" {
		t.Fatalf("expected nl, got %q", got)
	}
	if got := resolver.Resolve("fr", "quiz-fr.json"); got != DefaultLocale {
		t.Fatalf("expected fr to be rejected, got %q", got)
	}
}
