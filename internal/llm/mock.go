package llm

import (
	"context"
	"regexp"
	"strings"

	"github.com/ppiankov/edututor/internal/intent"
)

// Canned responses, keyed by resolved intent. Prose only — everything the
// mock says must survive sanitization untouched.
const (
	mockErrorText = "Meaning: This error indicates an exception was raised while " +
		"executing the code. Suggested steps: check the stack trace, " +
		"inspect the line and variables mentioned, and add logging or " +
		"a breakpoint to reproduce and fix the root cause."

	mockExplainText = "Key parts:\n" +
		"- What the code does\n" +
		"- Important functions\n" +
		"- Edge cases and complexity"

	mockConceptText = "Definition: A high-level idea: Recursion is when a function calls " +
		"itself. Typical parts include a base case, a recursive case, and " +
		"ensuring progress toward the base case."

	mockDefaultText = "I'm not sure how to help with that exact input — can you provide more details?"
)

// intentDirectiveRe finds explicit markers like "INTENT: ERROR" or
// "intent=explain_code" embedded in the prompt.
var intentDirectiveRe = regexp.MustCompile(`(?i)intent\s*[:=]\s*([a-zA-Z0-9_\-]+)`)

// Mock is the deterministic offline provider: same prompt and intent,
// same answer, every time.
type Mock struct{}

// NewMock returns the deterministic mock provider.
func NewMock() *Mock {
	return &Mock{}
}

// Name implements Provider.
func (m *Mock) Name() string { return "mock" }

// Send implements Provider. Never fails. An intent directive inside the
// prompt overrides the intent argument, mirroring how a real provider
// would obey its system message.
func (m *Mock) Send(_ context.Context, prompt string, it intent.Intent, _ int) (Result, error) {
	if d := intentDirectiveRe.FindStringSubmatch(prompt); d != nil {
		if parsed := intent.Parse(d[1]); parsed != intent.None {
			it = parsed
		}
	}

	switch it {
	case intent.Error:
		return Result{Text: mockErrorText, Raw: map[string]any{"intent": "error"}}, nil
	case intent.ExplainCode:
		return Result{Text: mockExplainText, Raw: map[string]any{"intent": "explain_code"}}, nil
	case intent.Concept:
		return Result{Text: mockConceptText, Raw: map[string]any{"intent": "concept"}}, nil
	}

	// No usable intent: fall back to keyword heuristics on the prompt.
	low := strings.ToLower(prompt)
	switch {
	case strings.Contains(low, "traceback") || strings.Contains(low, "exception"):
		return Result{Text: mockErrorText, Raw: map[string]any{"fallback": "error"}}, nil
	case strings.Contains(low, "explain") && strings.Contains(low, "code"):
		return Result{Text: mockExplainText, Raw: map[string]any{"fallback": "explain_code"}}, nil
	case strings.Contains(low, "recursion"):
		return Result{Text: mockConceptText, Raw: map[string]any{"fallback": "concept"}}, nil
	default:
		return Result{Text: mockDefaultText, Raw: map[string]any{"fallback": "unknown"}}, nil
	}
}
