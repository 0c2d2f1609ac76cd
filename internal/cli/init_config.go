package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/policy"
)

func init() {
	rootCmd.AddCommand(initConfigCmd)
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Generate default rules.yaml and policy.yaml",
	Long: "Creates ~/.edututor/rules.yaml and ~/.edututor/policy.yaml with the\n" +
		"built-in defaults. Edit these files to add disallowed patterns or\n" +
		"change the refusal wording and guiding questions.",
	RunE: runInitConfig,
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	dir := filepath.Join(home, ".edututor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"rules.yaml", intent.DefaultConfigYAML()},
		{"policy.yaml", policy.DefaultConfigYAML()},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists at %s", f.name, path)
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		fmt.Printf("Created %s\n", path)
	}
	return nil
}
