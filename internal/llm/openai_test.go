package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/neurorouter"

	"github.com/ppiankov/edututor/internal/intent"
)

func fastBackoff(t *testing.T) {
	t.Helper()
	old := backoffBase
	backoffBase = time.Millisecond
	t.Cleanup(func() { backoffBase = old })
}

func chatResponse(content string) string {
	return `{"choices":[{"message":{"content":"` + content + `"}}]}`
}

func newProvider(url string, retries int) *OpenAI {
	return NewOpenAI(OpenAIConfig{
		APIURL:     url,
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    5 * time.Second,
		MaxRetries: retries,
	})
}

func TestOpenAISuccess(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(chatResponse("Recursion is self-reference with a base case.")))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 0)
	res, err := p.Send(context.Background(), "explain recursion", intent.Concept, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "Recursion") {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("missing auth header, got %q", gotAuth)
	}
	if !strings.Contains(gotBody, "INTENT: CONCEPT") {
		t.Errorf("request missing intent tag: %s", gotBody)
	}
	if res.Raw == nil {
		t.Error("expected raw payload")
	}
}

func TestOpenAIRetriesTransient(t *testing.T) {
	fastBackoff(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(chatResponse("finally")))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 3)
	res, err := p.Send(context.Background(), "q", intent.Concept, 0)
	if err != nil {
		t.Fatalf("expected success after retries: %v", err)
	}
	if res.Text != "finally" {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestOpenAIRateLimitExhausted(t *testing.T) {
	fastBackoff(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 1)
	_, err := p.Send(context.Background(), "q", intent.Concept, 0)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if !errors.Is(err, neurorouter.ErrRateLimited) {
		t.Errorf("expected rate-limit sentinel, got %v", err)
	}
}

func TestOpenAINonRetryableFailsFast(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 3)
	_, err := p.Send(context.Background(), "q", intent.Concept, 0)
	if err == nil {
		t.Fatal("expected error for HTTP 400")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected no retries for HTTP 400, got %d attempts", got)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, 0)
	if _, err := p.Send(context.Background(), "q", intent.Concept, 0); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIContextCancelled(t *testing.T) {
	fastBackoff(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newProvider(srv.URL, 3)
	if _, err := p.Send(ctx, "q", intent.Concept, 0); err == nil {
		t.Fatal("expected error with cancelled context")
	}
}
