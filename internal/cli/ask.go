package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edututor/internal/intent"
)

var (
	askHint    string
	askRules   string
	askPolicy  string
	askDB      string
	askFormat  string
	askVerbose bool
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askHint, "hint", "", "Intent hint (concept|error|explain_code)")
	askCmd.Flags().StringVar(&askRules, "rules", "", "Path to rules YAML (default ~/.edututor/rules.yaml)")
	askCmd.Flags().StringVar(&askPolicy, "policy", "", "Path to policy YAML (default ~/.edututor/policy.yaml)")
	askCmd.Flags().StringVar(&askDB, "db", "", "Path to conversation database (default ~/.edututor/edututor.db)")
	askCmd.Flags().StringVarP(&askFormat, "format", "f", "text", "Output format (text|json)")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "Log pipeline decisions to stderr")
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the tutor one question",
	Long: "Runs a single question through the tutoring pipeline and prints the\n" +
		"answer. Requests for code or full solutions are refused with guiding\n" +
		"questions instead.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	hint := intent.Parse(askHint)
	if askHint != "" && hint == intent.None {
		return fmt.Errorf("unknown hint %q (use concept, error, or explain_code)", askHint)
	}

	tut, st, err := buildTutor(askRules, askPolicy, askDB, askVerbose)
	if err != nil {
		return err
	}
	defer st.Close()

	text := strings.Join(args, " ")
	res := tut.HandleUserMessage(context.Background(), text, hint)

	switch askFormat {
	case "json":
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		if !res.Allowed {
			fmt.Printf("[refused: %s]\n\n", res.Reason)
		}
		fmt.Println(res.Content)
	}
	return nil
}
