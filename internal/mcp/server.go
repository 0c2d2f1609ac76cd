// Package mcp exposes the tutoring pipeline as MCP tools over stdio, so
// agent hosts can ask questions, dry-run classification, and read history.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/llm"
	"github.com/ppiankov/edututor/internal/policy"
	"github.com/ppiankov/edututor/internal/store"
	"github.com/ppiankov/edututor/internal/tutor"
)

// Config holds MCP server configuration.
type Config struct {
	RulesPath  string
	PolicyPath string
	DBPath     string
	Provider   llm.Provider
	Verbose    bool
}

// Server wraps the MCP SDK server around a Tutor and its store.
type Server struct {
	mcpServer *mcpsdk.Server
	tutor     *tutor.Tutor
	store     *store.Store
}

// New creates an MCP server with loaded configuration and tools. A nil
// Provider selects from the environment.
func New(cfg Config) (*Server, error) {
	intentCfg, err := intent.LoadConfig(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules config: %w", err)
	}
	policyCfg, err := policy.LoadConfig(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy config: %w", err)
	}

	provider := cfg.Provider
	if provider == nil {
		provider = llm.FromEnv()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}

	tut, err := tutor.New(tutor.Config{
		Provider: provider,
		Store:    st,
		Intent:   intentCfg,
		Policy:   policyCfg,
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to build tutor: %w", err)
	}

	s := &Server{
		tutor: tut,
		store: st,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "edututor",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the conversation store.
func (s *Server) Close() error {
	return s.store.Close()
}

// registerTools adds all edututor tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "edututor_ask",
		Description: "Ask the tutor a question. Requests for code or full solutions are refused with guiding questions instead.",
	}, s.handleAsk)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "edututor_classify",
		Description: "Classify a question and show the policy decision without calling the generation provider (dry-run).",
	}, s.handleClassify)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "edututor_history",
		Description: "List recent tutoring conversations from the local log.",
	}, s.handleHistory)
}
