package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/neurorouter"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/policy"
)

// OpenAIConfig holds parameters for the OpenAI-compatible provider.
// APIURL is the full chat-completions endpoint, so any compatible
// backend (OpenAI, Groq, a local Ollama) works unchanged.
type OpenAIConfig struct {
	APIURL     string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	MaxTokens  int
}

const (
	defaultAPIURL     = "https://api.openai.com/v1/chat/completions"
	defaultModel      = "gpt-3.5-turbo"
	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 3
	defaultMaxTokens  = 512
)

// backoffBase scales the retry delay; tests shrink it.
var backoffBase = time.Second

// OpenAIConfigFromEnv reads provider configuration from the environment.
func OpenAIConfigFromEnv() OpenAIConfig {
	return OpenAIConfig{
		APIURL:     envOr("EDUTUTOR_API_URL", defaultAPIURL),
		APIKey:     os.Getenv("EDUTUTOR_API_KEY"),
		Model:      envOr("EDUTUTOR_MODEL", defaultModel),
		Timeout:    time.Duration(envInt("EDUTUTOR_TIMEOUT_SECONDS", 20)) * time.Second,
		MaxRetries: envInt("EDUTUTOR_MAX_RETRIES", defaultMaxRetries),
		MaxTokens:  envInt("EDUTUTOR_MAX_TOKENS", defaultMaxTokens),
	}
}

// OpenAI sends prompts to an OpenAI-compatible chat-completions endpoint.
// Transient failures (429, 5xx, connection errors) are retried with capped
// exponential backoff plus jitter; everything else fails immediately.
type OpenAI struct {
	cfg    OpenAIConfig
	client *http.Client
}

// NewOpenAI creates the provider with validated configuration.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &OpenAI{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name implements Provider.
func (p *OpenAI) Name() string { return "openai" }

// Send implements Provider.
func (p *OpenAI) Send(ctx context.Context, prompt string, it intent.Intent, maxTokens int) (Result, error) {
	if maxTokens <= 0 {
		maxTokens = p.cfg.MaxTokens
	}

	systemMsg := policy.SystemPrompt + "\n\nINTENT: " + strings.ToUpper(string(it))
	body, _ := json.Marshal(map[string]any{
		"model": p.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemMsg},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": 0.2,
	})

	var lastErr error
	for attempt := 1; ; attempt++ {
		res, retryable, err := p.post(ctx, body)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !retryable || attempt > p.cfg.MaxRetries {
			return Result{}, lastErr
		}

		wait := backoffBase<<(attempt-1) + time.Duration(rand.Int63n(int64(500*time.Millisecond)))
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// post performs one request. The second return value reports whether the
// failure is worth retrying.
func (p *OpenAI) post(ctx context.Context, body []byte) (Result, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, true, fmt.Errorf("generation request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusOK:
		// parsed below
	case resp.StatusCode == http.StatusTooManyRequests:
		return Result{}, true, fmt.Errorf("generation HTTP 429: %w", neurorouter.ErrRateLimited)
	case resp.StatusCode >= 500:
		return Result{}, true, fmt.Errorf("generation HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	default:
		return Result{}, false, fmt.Errorf("generation HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Choices) == 0 {
		return Result{}, false, fmt.Errorf("empty generation response")
	}

	raw := map[string]any{}
	_ = json.Unmarshal(respBody, &raw)

	return Result{
		Text: strings.TrimSpace(parsed.Choices[0].Message.Content),
		Raw:  raw,
	}, false, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
