package intent

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PatternDef is an operator-defined disallowed pattern from config.
// The regex is compiled case-insensitively.
type PatternDef struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// Config holds operator customizations for the classifier. Extra patterns
// extend the disallowed check only — the rule order itself is fixed.
type Config struct {
	DisallowedPatterns []PatternDef `yaml:"disallowed_patterns"`
}

// DefaultConfig returns the built-in classifier config (no extras).
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads classifier configuration from a YAML file.
// Empty path falls back to ~/.edututor/rules.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".edututor", "rules.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read rules config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse rules config: %w", err)
	}

	return cfg, nil
}

// DefaultConfigYAML returns a commented YAML string for init-config.
func DefaultConfigYAML() string {
	return `# edututor classifier rules
# Generated by: edututor init-config
#
# Extra disallowed patterns extend the built-in "requests for code or
# finished solutions" check. They are compiled case-insensitively and
# evaluated before everything else, including explicit UI hints.
#
# Fields:
#   name:  identifier shown in error messages
#   regex: Go regular expression (RE2 syntax)
disallowed_patterns: []
#  - name: homework_upload
#    regex: '\bdo my (homework|assignment)\b'
`
}
