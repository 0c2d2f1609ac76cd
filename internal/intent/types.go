package intent

import "strings"

// Intent is the discrete category assigned to a user message. It drives
// which response scaffold applies and whether the request is allowed at all.
type Intent string

const (
	Concept     Intent = "concept"      // "explain recursion"
	Error       Intent = "error"        // "what does this traceback mean?"
	ExplainCode Intent = "explain_code" // "explain my quicksort function"
	Disallowed  Intent = "disallowed"   // "write the code for X"
	Unknown     Intent = "unknown"

	// None marks the absence of a UI hint.
	None Intent = ""
)

// Classified is the classifier output: one intent, a human-readable reason,
// and the hint the caller supplied (if any). Immutable once constructed.
type Classified struct {
	Intent   Intent `json:"intent"`
	Reason   string `json:"reason"`
	UserHint Intent `json:"user_hint,omitempty"`
}

// Parse maps a user-facing hint string to an Intent. Only the three
// hintable intents are recognized; everything else maps to None.
func Parse(s string) Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "concept":
		return Concept
	case "error":
		return Error
	case "explain", "explain_code", "explain-code":
		return ExplainCode
	default:
		return None
	}
}

// Hintable returns true if the intent can be supplied as an explicit hint.
func Hintable(it Intent) bool {
	return it == Concept || it == Error || it == ExplainCode
}
