package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	edumcp "github.com/ppiankov/edututor/internal/mcp"
)

var (
	mcpRules   string
	mcpPolicy  string
	mcpDB      string
	mcpVerbose bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRules, "rules", "", "Path to rules YAML (default ~/.edututor/rules.yaml)")
	mcpCmd.Flags().StringVar(&mcpPolicy, "policy", "", "Path to policy YAML (default ~/.edututor/policy.yaml)")
	mcpCmd.Flags().StringVar(&mcpDB, "db", "", "Path to conversation database (default ~/.edututor/edututor.db)")
	mcpCmd.Flags().BoolVarP(&mcpVerbose, "verbose", "v", false, "Log pipeline decisions to stderr")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs edututor as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the tools: ask, classify, history.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := edumcp.New(edumcp.Config{
		RulesPath:  mcpRules,
		PolicyPath: mcpPolicy,
		DBPath:     mcpDB,
		Verbose:    mcpVerbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "edututor MCP server running on stdio")
	return srv.Run(ctx)
}
