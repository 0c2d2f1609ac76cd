package sanitize

import (
	"strings"
	"testing"
)

func TestStripFencedAndInline(t *testing.T) {
	s := "Here is code:\n```py\nprint('hi')\n```\nAnd inline `x = 1` end."
	out := Sanitize(s)

	if !strings.Contains(out, FencedPlaceholder) {
		t.Errorf("expected fenced placeholder in %q", out)
	}
	if !strings.Contains(out, InlinePlaceholder) {
		t.Errorf("expected inline placeholder in %q", out)
	}
	if strings.Contains(out, "`") {
		t.Errorf("backtick survived sanitization: %q", out)
	}
	if strings.Contains(out, "print") {
		t.Errorf("fenced content survived: %q", out)
	}
}

func TestUnclosedFenceRemoved(t *testing.T) {
	out := Sanitize("look:\n```py\nx = compute()")
	if strings.Contains(out, "```") {
		t.Errorf("orphan fence survived: %q", out)
	}
	if strings.Contains(out, "compute()") {
		t.Errorf("code line survived rebuild: %q", out)
	}
}

func TestPlainProseUntouched(t *testing.T) {
	s := "Recursion means a function calls itself on a smaller input.\nThink of nested mirrors."
	if out := Sanitize(s); out != s {
		t.Errorf("prose was altered:\n%q\n%q", s, out)
	}
}

func TestColonProseSurvivesRebuild(t *testing.T) {
	// A single colon-bearing line trips the punctuation ratio, but the
	// rebuild keeps colon-only lines.
	s := "Meaning: the interpreter reached code it could not execute."
	out := Sanitize(s)
	if !strings.Contains(out, "Meaning:") {
		t.Errorf("colon prose was dropped: %q", out)
	}
}

func TestCodeLikeLinesDropped(t *testing.T) {
	s := "def add(a, b):\n    return a + b\nUse a loop instead of recursion here."
	out := Sanitize(s)
	if strings.Contains(out, "def add") || strings.Contains(out, "return") {
		t.Errorf("code survived: %q", out)
	}
	if !strings.Contains(out, "Use a loop instead") {
		t.Errorf("prose line was dropped: %q", out)
	}
}

func TestAllCodeBecomesPlaceholder(t *testing.T) {
	s := "x = 1\ny = f(x)\nreturn y"
	if out := Sanitize(s); out != RemovedPlaceholder {
		t.Errorf("expected %q, got %q", RemovedPlaceholder, out)
	}
}

func TestOverlongLineDropped(t *testing.T) {
	long := strings.Repeat("word ", 80) + "return nothing here really"
	s := long + "\nreadable line without issues\nreturn x"
	out := Sanitize(s)
	if strings.Contains(out, "word word") {
		t.Errorf("overlong line survived: %q", out)
	}
	if !strings.Contains(out, "readable line") {
		t.Errorf("short prose dropped: %q", out)
	}
}

func TestEmptyInput(t *testing.T) {
	if out := Sanitize(""); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if out := Sanitize("   \n\t"); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestDetectCodeLike(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", false},
		{"plain prose about hash tables", false},
		{"def f(x):\n    pass", true},
		{"for item in items do the thing", true},
		{"while x < y: keep going", true},
		{"return early when the base case hits", true},
		{"a = 1\nb = 2\nc = 3", true},
		{"one line has x = 1\nbut these four\nother lines\nare prose\nso ratio stays low", false},
	}
	for _, tc := range cases {
		if got := DetectCodeLike(tc.text); got != tc.want {
			t.Errorf("DetectCodeLike(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestIdempotence(t *testing.T) {
	samples := []string{
		"",
		"plain prose",
		"Here is code:\n```py\nprint('hi')\n```\nAnd inline `x = 1` end.",
		"def f(x):\n    return x\nall gone",
		"x = 1\nreturn x",
		"Meaning: something raised an exception: inspect the trace.",
		"unclosed fence ```py\nx = 1",
		"stray ` backtick and `paired` span",
		"for item in items keep walking",
	}
	for _, s := range samples {
		once := Sanitize(s)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q", s, once, twice)
		}
	}
}
