package policy

import "github.com/ppiankov/edututor/internal/intent"

// Decision is the output of policy evaluation.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
	// Scaffold is the response template for the generation provider.
	// Empty when the request is not allowed.
	Scaffold string `json:"scaffold,omitempty"`
	// Questions are Socratic nudges, at most two.
	Questions []string `json:"questions,omitempty"`
}

// scaffoldFor maps each allowed intent to its response scaffold. Unknown
// deliberately shares the concept scaffold: with no signal, concept-style
// guidance is the least presumptive shape.
var scaffoldFor = map[intent.Intent]string{
	intent.Concept:     ConceptScaffold,
	intent.Error:       ErrorScaffold,
	intent.ExplainCode: ExplainCodeScaffold,
	intent.Unknown:     ConceptScaffold,
}

// Decide maps a classified intent to a policy decision. Total function
// over the five intent values; cfg may be nil for defaults.
func Decide(ci intent.Classified, cfg *Config) Decision {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if ci.Intent == intent.Disallowed {
		return Decision{Allowed: false, Reason: ci.Reason}
	}

	reason := ci.Reason
	if ci.Intent == intent.Unknown {
		reason = "defaulted to concept-style guidance"
	}

	return Decision{
		Allowed:   true,
		Reason:    reason,
		Scaffold:  scaffoldFor[ci.Intent],
		Questions: cfg.leadQuestions(2),
	}
}
