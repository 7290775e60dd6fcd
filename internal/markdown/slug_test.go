package markdown

import (
	"regexp"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"C++ & Templates", "c-plus-plus-and-templates"},
		{"C# Basics", "c-sharp-basics"},
		{"  Array   Basics!  ", "array-basics"},
		{"python_basics", "python-basics"},
		{"--Edge--", "edge"},
		{"Node.js Basics", "node-js-basics"},
		{"ASP.NET Core", "asp-net-core"},
		{"Español Básico", "espa-ol-b-sico"},
		{"Ünïcode Quiz", "n-code-quiz"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		got := Slugify(tc.in)
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
		if got != "" && !slugShape.MatchString(got) {
			t.Fatalf("%q: slug %q is not url safe", tc.in, got)
		}
	}
}

func TestHumanizeSegment(t *testing.T) {
	cases := map[string]string{
		"python-basics": "Python Basics",
		"data_STRUCTS":  "Data Structs",
		"go":            "Go",
	}
	for in, want := range cases {
		if got := HumanizeSegment(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}
