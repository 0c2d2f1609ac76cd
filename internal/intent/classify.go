package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// Compiled patterns for intent detection. Matching is lexical by design:
// the priority order in Classify encodes the precedence, not the patterns.
var (
	// Requests for code or finished solutions: an action verb within a
	// bounded gap of a code noun, or share/post phrasing near code.
	disallowedRe = regexp.MustCompile(`(?i)\b(write|implement|code|solve|complete|fill in|finish|generate|produce|give|provide|paste|spit out|send me)\b[^.\n\r]{0,50}\b(code|function|class|program|solution|implementation|script|method)s?\b|\b(share|post)\b[^.\n\r]{0,30}\b(code|full solution|entire)\b`)

	// Error-related language.
	errorRe = regexp.MustCompile(`(?i)\b(error|exception|traceback|stack trace|segmentation fault|undefined reference)\b`)

	// Words that strongly imply "this is code / an implementation".
	codeIndicatorRe = regexp.MustCompile(`(?i)\b(function|method|snippet|this code|this function|my function|my method|class|module)\b`)

	// Concept-question phrasing.
	conceptRe = regexp.MustCompile(`(?i)\b(explain|what is|how does|teach|overview|concept|intuition)\b`)

	// Generic explain-style phrasing without a code indicator.
	explainRe = regexp.MustCompile(`(?i)\b(explain|walk me through|annotate|what does this)\b`)
)

// Classifier maps free-form input text to an intent by evaluating an
// ordered rule list, first match wins. Stateless after construction;
// safe for concurrent use.
type Classifier struct {
	disallowed []*regexp.Regexp // built-in first, then config extras
}

// New builds a classifier. cfg may be nil for built-in patterns only.
func New(cfg *Config) (*Classifier, error) {
	patterns := []*regexp.Regexp{disallowedRe}
	if cfg != nil {
		for i, def := range cfg.DisallowedPatterns {
			if def.Regex == "" {
				return nil, fmt.Errorf("disallowed_patterns[%d]: regex is required", i)
			}
			re, err := regexp.Compile("(?i)" + def.Regex)
			if err != nil {
				return nil, fmt.Errorf("disallowed_patterns[%d] (%s): %w", i, def.Name, err)
			}
			patterns = append(patterns, re)
		}
	}
	return &Classifier{disallowed: patterns}, nil
}

// Classify assigns an intent to text. Total function: never fails, empty
// or whitespace-only input degrades to Unknown.
//
// Rule order (must not be changed):
//  1. Disallowed requests — refusal beats everything, including hints
//  2. Explicit user hint, when hintable
//  3. Error-related language
//  4. Code indicators
//  5. Concept phrasing
//  6. Generic explain phrasing — defaults to ExplainCode, not Concept
//  7. Fallback — Unknown
func (c *Classifier) Classify(text string, hint Intent) Classified {
	t := strings.TrimSpace(text)
	if t == "" {
		return Classified{Intent: Unknown, Reason: "empty or whitespace-only input", UserHint: hint}
	}

	if c.isDisallowed(t) {
		return Classified{Intent: Disallowed, Reason: "matched disallowed request for code/solution", UserHint: hint}
	}

	if Hintable(hint) {
		return Classified{Intent: hint, Reason: fmt.Sprintf("user hinted %s", hint), UserHint: hint}
	}

	if errorRe.MatchString(t) {
		return Classified{Intent: Error, Reason: "matched error-related phrasing", UserHint: hint}
	}

	if codeIndicatorRe.MatchString(t) {
		return Classified{Intent: ExplainCode, Reason: "matched explain-code phrasing / code indicators", UserHint: hint}
	}

	if conceptRe.MatchString(t) {
		return Classified{Intent: Concept, Reason: "matched concept phrasing", UserHint: hint}
	}

	// Bare "explain"-style requests lean toward code explanation. The bias
	// is deliberate: with no other signal, explaining the user's own code
	// is the safer scaffold than a concept lecture.
	if explainRe.MatchString(t) {
		return Classified{Intent: ExplainCode, Reason: "matched explain-style phrasing", UserHint: hint}
	}

	return Classified{Intent: Unknown, Reason: "no pattern matched", UserHint: hint}
}

func (c *Classifier) isDisallowed(t string) bool {
	for _, re := range c.disallowed {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
