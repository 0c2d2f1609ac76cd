package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/edututor/internal/intent"
)

// --- Input/Output types ---

// AskInput defines parameters for the edututor_ask tool.
type AskInput struct {
	Text string `json:"text" jsonschema:"the question to ask the tutor"`
	Hint string `json:"hint,omitempty" jsonschema:"optional intent hint (concept/error/explain_code)"`
}

// AskOutput contains the tutoring result.
type AskOutput struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
	Content string `json:"content"`
	Intent  string `json:"intent"`
}

// ClassifyInput defines parameters for the edututor_classify tool.
type ClassifyInput struct {
	Text string `json:"text" jsonschema:"the question to classify"`
	Hint string `json:"hint,omitempty" jsonschema:"optional intent hint (concept/error/explain_code)"`
}

// ClassifyOutput contains the classification and policy decision.
type ClassifyOutput struct {
	Intent    string   `json:"intent"`
	Reason    string   `json:"reason"`
	Allowed   bool     `json:"allowed"`
	Questions []string `json:"questions,omitempty"`
}

// HistoryInput defines parameters for the edututor_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum rows to return (default 20)"`
}

// HistoryOutput lists recent conversations.
type HistoryOutput struct {
	Conversations []HistoryItem `json:"conversations"`
}

// HistoryItem describes one logged conversation.
type HistoryItem struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	UserText  string `json:"user_text"`
	Intent    string `json:"intent"`
	Provider  string `json:"provider"`
	Content   string `json:"content"`
}

// --- Handlers ---

func (s *Server) handleAsk(ctx context.Context, req *mcpsdk.CallToolRequest, input AskInput) (*mcpsdk.CallToolResult, AskOutput, error) {
	res := s.tutor.HandleUserMessage(ctx, input.Text, intent.Parse(input.Hint))

	out := AskOutput{
		Allowed: res.Allowed,
		Reason:  res.Reason,
		Content: res.Content,
		Intent:  string(res.Intent),
	}
	if !res.Allowed {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcpsdk.CallToolRequest, input ClassifyInput) (*mcpsdk.CallToolResult, ClassifyOutput, error) {
	ci, decision := s.tutor.Classify(input.Text, intent.Parse(input.Hint))

	return nil, ClassifyOutput{
		Intent:    string(ci.Intent),
		Reason:    decision.Reason,
		Allowed:   decision.Allowed,
		Questions: decision.Questions,
	}, nil
}

func (s *Server) handleHistory(ctx context.Context, req *mcpsdk.CallToolRequest, input HistoryInput) (*mcpsdk.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	recs, err := s.store.FetchRecent(limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	items := make([]HistoryItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, HistoryItem{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UserText:  r.UserText,
			Intent:    r.Intent,
			Provider:  r.Provider,
			Content:   r.SanitizedText,
		})
	}
	return nil, HistoryOutput{Conversations: items}, nil
}
