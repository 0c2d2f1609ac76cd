// Package tutor wires the pipeline together: classify, decide, generate,
// sanitize, and log. One call in, one textual answer out, no matter what
// fails along the way.
package tutor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/llm"
	"github.com/ppiankov/edututor/internal/policy"
	"github.com/ppiankov/edututor/internal/sanitize"
)

// SystemErrorContent is returned when the generation provider fails.
const SystemErrorContent = "I couldn't produce an answer right now. Please try rephrasing your question."

// EmptyContentFallback replaces answers that sanitization emptied out.
const EmptyContentFallback = "[content removed: empty after sanitization]"

// Result is the externally visible outcome of one user message.
type Result struct {
	Allowed bool          `json:"allowed"`
	Reason  string        `json:"reason"`
	Content string        `json:"content"`
	Intent  intent.Intent `json:"intent"`
}

// ConversationStore is the persistence collaborator. Saves are best-effort;
// the pipeline logs failures and moves on.
type ConversationStore interface {
	SaveConversation(userText, intentName, provider string, llmRaw map[string]any, sanitized string, metadata map[string]any) (int64, error)
}

// Config holds the collaborators and settings for a Tutor.
type Config struct {
	Provider llm.Provider
	Store    ConversationStore
	Intent   *intent.Config
	Policy   *policy.Config
	Verbose  bool
}

// Tutor runs the pipeline. Safe for concurrent use; Reload swaps the
// classifier and policy configuration under a write lock.
type Tutor struct {
	mu         sync.RWMutex
	classifier *intent.Classifier
	policyCfg  *policy.Config

	provider  llm.Provider
	store     ConversationStore
	sessionID string
	verbose   bool
}

// New builds a Tutor. A nil Provider gets the deterministic mock; a nil
// Store disables persistence.
func New(cfg Config) (*Tutor, error) {
	if cfg.Intent == nil {
		cfg.Intent = intent.DefaultConfig()
	}
	if cfg.Policy == nil {
		cfg.Policy = policy.DefaultConfig()
	}
	if cfg.Provider == nil {
		cfg.Provider = llm.NewMock()
	}

	classifier, err := intent.New(cfg.Intent)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	return &Tutor{
		classifier: classifier,
		policyCfg:  cfg.Policy,
		provider:   cfg.Provider,
		store:      cfg.Store,
		sessionID:  uuid.NewString(),
		verbose:    cfg.Verbose,
	}, nil
}

// SessionID identifies this Tutor instance in conversation metadata.
func (t *Tutor) SessionID() string { return t.sessionID }

// Provider returns the active generation provider.
func (t *Tutor) Provider() llm.Provider { return t.provider }

// Reload replaces the classifier and policy configuration. Used by the
// file watcher; in-flight messages finish with the old configuration.
func (t *Tutor) Reload(intentCfg *intent.Config, policyCfg *policy.Config) error {
	if intentCfg == nil {
		intentCfg = intent.DefaultConfig()
	}
	if policyCfg == nil {
		policyCfg = policy.DefaultConfig()
	}
	classifier, err := intent.New(intentCfg)
	if err != nil {
		return fmt.Errorf("rebuild classifier: %w", err)
	}

	t.mu.Lock()
	t.classifier = classifier
	t.policyCfg = policyCfg
	t.mu.Unlock()
	return nil
}

// Classify runs only the classification and policy stages. Used by the
// dry-run surfaces; no provider call, no persistence.
func (t *Tutor) Classify(text string, hint intent.Intent) (intent.Classified, policy.Decision) {
	t.mu.RLock()
	classifier := t.classifier
	policyCfg := t.policyCfg
	t.mu.RUnlock()

	ci := classifier.Classify(text, hint)
	return ci, policy.Decide(ci, policyCfg)
}

// HandleUserMessage runs the full pipeline for one message. It always
// returns a usable Result; provider failures become a system error
// message and persistence failures are only logged.
func (t *Tutor) HandleUserMessage(ctx context.Context, text string, hint intent.Intent) Result {
	ci, decision := t.Classify(text, hint)

	if t.verbose {
		fmt.Fprintf(os.Stderr, "tutor: intent=%s allowed=%v reason=%s\n", ci.Intent, decision.Allowed, decision.Reason)
	}

	if !decision.Allowed {
		content := refusalContent(decision, t.refusalPreamble())
		t.save(text, ci.Intent, "policy", nil, content, map[string]any{
			"allowed": false,
			"reason":  decision.Reason,
		})
		return Result{Allowed: false, Reason: decision.Reason, Content: content, Intent: ci.Intent}
	}

	prompt := buildPrompt(decision, ci.Intent)
	genRes, err := t.generate(ctx, prompt, ci.Intent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tutor: generation failed: %v\n", err)
		content := SystemErrorContent
		t.save(text, ci.Intent, t.provider.Name(), nil, content, map[string]any{
			"allowed": false,
			"error":   err.Error(),
		})
		return Result{Allowed: false, Reason: "generation failed", Content: content, Intent: ci.Intent}
	}

	content := sanitize.Sanitize(genRes.Text)
	if strings.TrimSpace(content) == "" {
		content = EmptyContentFallback
	}

	t.save(text, ci.Intent, t.provider.Name(), genRes.Raw, content, map[string]any{
		"allowed": true,
		"reason":  decision.Reason,
	})
	return Result{Allowed: true, Reason: decision.Reason, Content: content, Intent: ci.Intent}
}

// generate calls the provider with a recover guard so a panicking provider
// degrades to an error instead of killing the caller.
func (t *Tutor) generate(ctx context.Context, prompt string, it intent.Intent) (res llm.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return t.provider.Send(ctx, prompt, it, 0)
}

func (t *Tutor) refusalPreamble() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.policyCfg.Preamble()
}

// save logs the interaction. Failures never surface to the caller.
func (t *Tutor) save(userText string, it intent.Intent, provider string, raw map[string]any, sanitized string, metadata map[string]any) {
	if t.store == nil {
		return
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["session_id"] = t.sessionID
	if _, err := t.store.SaveConversation(userText, string(it), provider, raw, sanitized, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "tutor: failed to log conversation: %v\n", err)
	}
}

// refusalContent renders the deterministic denial message: preamble,
// reason, a redirect line, then any guiding questions as bullets.
func refusalContent(d policy.Decision, preamble string) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\nReason: ")
	b.WriteString(d.Reason)
	b.WriteString("\n\n")
	b.WriteString(policy.RefusalGuidance)
	for _, q := range d.Questions {
		b.WriteString("\n- ")
		b.WriteString(q)
	}
	return b.String()
}

// buildPrompt tags the scaffold with the resolved intent. Placeholders
// stay as-authored; the provider shapes prose to fit them.
func buildPrompt(d policy.Decision, it intent.Intent) string {
	return d.Scaffold + "\n\nINTENT: " + strings.ToUpper(string(it))
}
