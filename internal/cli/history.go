package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edututor/internal/store"
)

var (
	historyDB     string
	historyLimit  int
	historyFormat string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDB, "db", "", "Path to conversation database (default ~/.edututor/edututor.db)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum rows to show")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "Output format (text|json)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tutoring conversations",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := store.Open(historyDB)
	if err != nil {
		return fmt.Errorf("failed to open conversation store: %w", err)
	}
	defer st.Close()

	recs, err := st.FetchRecent(historyLimit)
	if err != nil {
		return err
	}

	switch historyFormat {
	case "json":
		out, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		if len(recs) == 0 {
			fmt.Println("No conversations logged yet.")
			return nil
		}
		for _, r := range recs {
			fmt.Printf("#%d  %s  [%s via %s]\n", r.ID, r.CreatedAt, r.Intent, r.Provider)
			fmt.Printf("  Q: %s\n", r.UserText)
			fmt.Printf("  A: %s\n\n", r.SanitizedText)
		}
	}
	return nil
}
