package policy

import (
	"strings"
	"testing"

	"github.com/ppiankov/edututor/internal/intent"
)

func TestDisallowedDenied(t *testing.T) {
	ci := intent.Classified{Intent: intent.Disallowed, Reason: "matched disallowed request for code/solution"}
	d := Decide(ci, nil)

	if d.Allowed {
		t.Fatal("expected disallowed intent to be denied")
	}
	if d.Scaffold != "" {
		t.Errorf("expected empty scaffold on denial, got %q", d.Scaffold)
	}
	if len(d.Questions) != 0 {
		t.Errorf("expected no questions on denial, got %d", len(d.Questions))
	}
	if d.Reason != ci.Reason {
		t.Errorf("expected classifier reason carried through, got %q", d.Reason)
	}
}

func TestAllowedIntents(t *testing.T) {
	cases := []struct {
		it       intent.Intent
		scaffold string
		wording  string
	}{
		{intent.Concept, ConceptScaffold, "Definition"},
		{intent.Error, ErrorScaffold, "Meaning of this error"},
		{intent.ExplainCode, ExplainCodeScaffold, "High-level intent"},
		{intent.Unknown, ConceptScaffold, "Definition"},
	}

	for _, tc := range cases {
		d := Decide(intent.Classified{Intent: tc.it, Reason: "r"}, nil)
		if !d.Allowed {
			t.Errorf("%s: expected allowed", tc.it)
		}
		if d.Scaffold != tc.scaffold {
			t.Errorf("%s: wrong scaffold", tc.it)
		}
		if !strings.Contains(d.Scaffold, tc.wording) {
			t.Errorf("%s: scaffold missing %q", tc.it, tc.wording)
		}
		if len(d.Questions) != 2 {
			t.Errorf("%s: expected 2 questions, got %d", tc.it, len(d.Questions))
		}
	}
}

func TestQuestionsAreLeadingPair(t *testing.T) {
	d := Decide(intent.Classified{Intent: intent.Concept, Reason: "r"}, nil)
	if d.Questions[0] != defaultQuestions[0] || d.Questions[1] != defaultQuestions[1] {
		t.Errorf("expected first two standard questions, got %v", d.Questions)
	}
}

func TestUnknownReasonRewritten(t *testing.T) {
	d := Decide(intent.Classified{Intent: intent.Unknown, Reason: "no pattern matched"}, nil)
	if d.Reason != "defaulted to concept-style guidance" {
		t.Errorf("unexpected reason: %q", d.Reason)
	}
}

func TestConfigQuestionOverride(t *testing.T) {
	cfg := &Config{Questions: []string{"only one"}}
	d := Decide(intent.Classified{Intent: intent.Error, Reason: "r"}, cfg)
	if len(d.Questions) != 1 || d.Questions[0] != "only one" {
		t.Errorf("expected overridden questions, got %v", d.Questions)
	}
}

func TestLeadQuestionsCopies(t *testing.T) {
	cfg := DefaultConfig()
	qs := cfg.leadQuestions(2)
	qs[0] = "mutated"
	if defaultQuestions[0] == "mutated" {
		t.Fatal("leadQuestions must not alias the default pool")
	}
}
