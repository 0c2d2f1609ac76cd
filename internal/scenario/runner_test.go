package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/policy"
)

func newClassifier(t *testing.T) *intent.Classifier {
	t.Helper()
	c, err := intent.New(intent.DefaultConfig())
	if err != nil {
		t.Fatalf("build classifier: %v", err)
	}
	return c
}

func boolPtr(b bool) *bool { return &b }

func TestRunAllPass(t *testing.T) {
	s := &Scenario{
		Name: "basics",
		Cases: []Case{
			{Text: "please write the code for mergesort", Expect: "disallowed", Allowed: boolPtr(false)},
			{Text: "explain recursion conceptually", Expect: "concept", Allowed: boolPtr(true)},
			{Text: "what does this traceback mean", Expect: "error"},
			{Text: "hello there", Expect: "unknown"},
		},
	}

	r := Run(s, newClassifier(t), policy.DefaultConfig())
	if r.Failed != 0 {
		t.Fatalf("expected all cases to pass, got %d failures: %+v", r.Failed, r.Cases)
	}
	if r.Passed != 4 || r.Total != 4 {
		t.Errorf("unexpected totals: %+v", r)
	}
}

func TestRunWrongIntentFails(t *testing.T) {
	s := &Scenario{
		Name: "mismatch",
		Cases: []Case{
			{Text: "explain recursion conceptually", Expect: "error"},
		},
	}

	r := Run(s, newClassifier(t), policy.DefaultConfig())
	if r.Failed != 1 {
		t.Fatalf("expected 1 failure, got %d", r.Failed)
	}
	if r.Cases[0].Actual != "concept" {
		t.Errorf("unexpected actual intent: %q", r.Cases[0].Actual)
	}
}

func TestRunAllowedMismatchFails(t *testing.T) {
	s := &Scenario{
		Name: "allowed-check",
		Cases: []Case{
			{Text: "explain recursion conceptually", Expect: "concept", Allowed: boolPtr(false)},
		},
	}

	r := Run(s, newClassifier(t), policy.DefaultConfig())
	if r.Failed != 1 {
		t.Fatalf("expected failure on allowed mismatch, got %+v", r)
	}
	if !strings.Contains(r.Cases[0].Reason, "expected allowed=false") {
		t.Errorf("reason should explain the mismatch: %q", r.Cases[0].Reason)
	}
}

func TestRunHintApplied(t *testing.T) {
	s := &Scenario{
		Name: "hinted",
		Cases: []Case{
			{Text: "tell me more about this topic", Hint: "concept", Expect: "concept"},
		},
	}

	r := Run(s, newClassifier(t), policy.DefaultConfig())
	if r.Failed != 0 {
		t.Fatalf("hinted case should pass, got %+v", r.Cases)
	}
}

func TestLoadAndRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basics.yaml")
	content := `name: basics
cases:
  - text: "please write the code for mergesort"
    expect: disallowed
    allowed: false
  - text: "explain recursion conceptually"
    expect: concept
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	r, err := LoadAndRun(path, filepath.Join(dir, "no-rules.yaml"), filepath.Join(dir, "no-policy.yaml"))
	if err != nil {
		t.Fatalf("load and run: %v", err)
	}
	if r.Failed != 0 {
		t.Fatalf("expected all cases to pass, got %+v", r.Cases)
	}
	if r.File != path || r.Name != "basics" {
		t.Errorf("unexpected metadata: %+v", r)
	}
}

func TestLoadAndRunBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("cases: {not a list"), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	if _, err := LoadAndRun(path, "", ""); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestFormatTextSummary(t *testing.T) {
	s := &Scenario{
		Name: "mixed",
		Cases: []Case{
			{Text: "explain recursion conceptually", Expect: "concept"},
			{Text: "explain recursion conceptually", Expect: "error"},
		},
	}
	r := Run(s, newClassifier(t), policy.DefaultConfig())
	r.File = "mixed.yaml"

	out := FormatText([]*RunResult{r})
	if !strings.Contains(out, "FAIL  mixed (1/2)") {
		t.Errorf("expected failure summary, got:\n%s", out)
	}
	if !strings.Contains(out, "1 of 2 cases passed.") {
		t.Errorf("expected totals line, got:\n%s", out)
	}
}
