// Package scenario runs classification assertions from YAML files, so
// custom rules can be regression-tested before deployment.
package scenario

// Case is one test case within a scenario.
type Case struct {
	Text    string `yaml:"text"`
	Hint    string `yaml:"hint,omitempty"`
	Expect  string `yaml:"expect"`
	Allowed *bool  `yaml:"allowed,omitempty"`
}

// Scenario is a named collection of classification test cases.
type Scenario struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	Text     string `json:"text"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
