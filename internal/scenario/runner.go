package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/policy"
)

// Run evaluates all cases against the given classifier and policy.
// Cases are independent; order does not matter.
func Run(s *Scenario, classifier *intent.Classifier, cfg *policy.Config) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		ci := classifier.Classify(c.Text, intent.Parse(c.Hint))
		decision := policy.Decide(ci, cfg)

		actual := string(ci.Intent)
		expected := strings.ToLower(strings.TrimSpace(c.Expect))

		cr := CaseResult{
			Index:    i + 1,
			Text:     c.Text,
			Expected: expected,
			Actual:   actual,
			Reason:   decision.Reason,
		}

		cr.Passed = actual == expected
		if c.Allowed != nil && decision.Allowed != *c.Allowed {
			cr.Passed = false
			cr.Reason = fmt.Sprintf("expected allowed=%v, got %v", *c.Allowed, decision.Allowed)
		}

		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}

		result.Cases = append(result.Cases, cr)
	}

	return result
}

// LoadAndRun loads a scenario YAML file, loads rules and policy, and runs.
func LoadAndRun(path, rulesPath, policyPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	intentCfg, err := intent.LoadConfig(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	classifier, err := intent.New(intentCfg)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	policyCfg, err := policy.LoadConfig(policyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	result := Run(&s, classifier, policyCfg)
	result.File = path

	return result, nil
}
