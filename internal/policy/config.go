package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds operator-adjustable policy parameters. The decision table
// itself is fixed; only the question pool and refusal wording are tunable.
type Config struct {
	// Questions replaces the standard Socratic question pool when set.
	Questions []string `yaml:"questions"`
	// RefusalPreamble replaces the refusal opening line when set.
	RefusalPreamble string `yaml:"refusal_preamble"`
}

// DefaultConfig returns the built-in policy config.
func DefaultConfig() *Config {
	return &Config{
		Questions:       defaultQuestions,
		RefusalPreamble: RefusalPreamble,
	}
}

// leadQuestions returns the first n questions from the pool.
func (c *Config) leadQuestions(n int) []string {
	qs := c.Questions
	if len(qs) == 0 {
		qs = defaultQuestions
	}
	if len(qs) > n {
		qs = qs[:n]
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

// Preamble returns the refusal opening line.
func (c *Config) Preamble() string {
	if c.RefusalPreamble == "" {
		return RefusalPreamble
	}
	return c.RefusalPreamble
}

// LoadConfig loads policy configuration from a YAML file.
// Empty path falls back to ~/.edututor/policy.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".edututor", "policy.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read policy config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse policy config: %w", err)
	}

	return cfg, nil
}

// DefaultConfigYAML returns a commented YAML string for init-config.
func DefaultConfigYAML() string {
	return `# edututor policy configuration
# Generated by: edututor init-config
#
# The decision table is fixed:
#   disallowed -> refuse (no generation call)
#   concept / error / explain_code / unknown -> allow with scaffold
# Only the Socratic question pool and refusal wording are tunable.

# Guiding questions appended to every response. The first two are used.
questions:
  - "What inputs and outputs should the program handle?"
  - "If you had to do this by hand, step-by-step, what would you do first?"
  - "Which data structure best fits this task (list, dict/map, set, queue, stack, tree)? Why?"
  - "What's the smallest sub-problem you can solve first?"
  - "How will you verify correctness (invariants, test cases)?"

# Opening line of every refusal.
refusal_preamble: "I can't provide code or full solutions."
`
}
