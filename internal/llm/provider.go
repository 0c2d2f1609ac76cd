// Package llm holds the pluggable text-generation providers. The core
// pipeline only depends on the Provider capability; the deterministic
// mock is the default so the tutor works offline and in CI.
package llm

import (
	"context"
	"os"
	"strings"

	"github.com/ppiankov/edututor/internal/intent"
)

// Result is the uniform provider response. Text is the prose the
// orchestrator will sanitize; Raw is the provider payload kept for
// diagnostics only and never parsed by the core.
type Result struct {
	Text string
	Raw  map[string]any
}

// Provider is the generation capability consumed by the orchestrator.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the provider in logs and conversation rows.
	Name() string
	// Send turns a prompt into prose. maxTokens <= 0 means provider default.
	Send(ctx context.Context, prompt string, it intent.Intent, maxTokens int) (Result, error)
}

// FromEnv selects a provider from EDUTUTOR_PROVIDER. "openai" yields the
// remote chat-completions provider configured from the environment;
// everything else (including unset) yields the deterministic mock.
func FromEnv() Provider {
	switch strings.ToLower(os.Getenv("EDUTUTOR_PROVIDER")) {
	case "openai", "openai_api":
		return NewOpenAI(OpenAIConfigFromEnv())
	default:
		return NewMock()
	}
}
