package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/policy"
)

var (
	classifyHint   string
	classifyRules  string
	classifyPolicy string
	classifyFormat string
)

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyHint, "hint", "", "Intent hint (concept|error|explain_code)")
	classifyCmd.Flags().StringVar(&classifyRules, "rules", "", "Path to rules YAML (default ~/.edututor/rules.yaml)")
	classifyCmd.Flags().StringVar(&classifyPolicy, "policy", "", "Path to policy YAML (default ~/.edututor/policy.yaml)")
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "text", "Output format (text|json)")
}

var classifyCmd = &cobra.Command{
	Use:   "classify [question]",
	Short: "Show the intent and policy decision without generating an answer",
	Long: "Dry-runs the classification and policy stages for a question.\n" +
		"No provider call, nothing is logged.",
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	hint := intent.Parse(classifyHint)
	if classifyHint != "" && hint == intent.None {
		return fmt.Errorf("unknown hint %q (use concept, error, or explain_code)", classifyHint)
	}

	intentCfg, err := intent.LoadConfig(classifyRules)
	if err != nil {
		return fmt.Errorf("failed to load rules config: %w", err)
	}
	policyCfg, err := policy.LoadConfig(classifyPolicy)
	if err != nil {
		return fmt.Errorf("failed to load policy config: %w", err)
	}
	classifier, err := intent.New(intentCfg)
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}

	ci := classifier.Classify(strings.Join(args, " "), hint)
	decision := policy.Decide(ci, policyCfg)

	switch classifyFormat {
	case "json":
		out, err := json.MarshalIndent(map[string]any{
			"intent":    ci.Intent,
			"reason":    decision.Reason,
			"allowed":   decision.Allowed,
			"questions": decision.Questions,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		fmt.Printf("Intent:  %s\n", ci.Intent)
		fmt.Printf("Allowed: %v\n", decision.Allowed)
		fmt.Printf("Reason:  %s\n", decision.Reason)
		for _, q := range decision.Questions {
			fmt.Printf("  - %s\n", q)
		}
	}
	return nil
}
