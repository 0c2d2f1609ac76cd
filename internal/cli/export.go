package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edututor/internal/store"
)

var (
	exportDB    string
	exportLimit int
	exportOut   string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Path to conversation database (default ~/.edututor/edututor.db)")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 100, "Maximum rows to export")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recent conversations as JSON",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(exportDB)
	if err != nil {
		return fmt.Errorf("failed to open conversation store: %w", err)
	}
	defer st.Close()

	out, err := st.ExportJSON(exportLimit)
	if err != nil {
		return err
	}

	if exportOut == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", exportOut)
	return nil
}
