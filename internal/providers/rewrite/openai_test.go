package rewrite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"elix-server/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestOpenAIRewriterSendsConfiguredPrompt(t *testing.T) {
	var captured openAIChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Simple words."}},
			},
		})
	}))
	defer srv.Close()

	rw, err := NewOpenAIRewriter(OpenAIOptions{APIKey: "key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAIRewriter: %v", err)
	}
	res, err := rw.Rewrite(context.Background(), Request{Text: "Quantum entanglement.", Persona: "I'm 5 years old"})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.Text != "Simple words." || res.Provider != openAIProviderName {
		t.Fatalf("result = %+v", res)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", captured.Model)
	}
	if captured.Temperature != 0.5 || captured.MaxTokens != 1000 {
		t.Fatalf("generation params = %v/%d", captured.Temperature, captured.MaxTokens)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages = %+v", captured.Messages)
	}
	if captured.Messages[0].Content != "Rewrite text for different audiences. Be concise and clear." {
		t.Fatalf("system message = %q", captured.Messages[0].Content)
	}
	want := "Rewrite this for someone who is I'm 5 years old:\n\nQuantum entanglement."
	if captured.Messages[1].Content != want {
		t.Fatalf("user message = %q", captured.Messages[1].Content)
	}
}

func TestOpenAIRewriterSurfacesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rw, err := NewOpenAIRewriter(OpenAIOptions{APIKey: "key", BaseURL: srv.URL, Fallback: NewStaticRewriter()})
	if err != nil {
		t.Fatalf("NewOpenAIRewriter: %v", err)
	}
	_, err = rw.Rewrite(context.Background(), Request{Text: "x", Persona: "p"})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("err = %v, want rate limited", err)
	}
}

func TestOpenAIRewriterFallsBackOnTransportError(t *testing.T) {
	var capturedReason string
	rw, err := NewOpenAIRewriter(OpenAIOptions{
		APIKey: "key",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		})},
		Fallback:   NewStaticRewriter(),
		OnFallback: func(reason string, err error) { capturedReason = reason },
	})
	if err != nil {
		t.Fatalf("NewOpenAIRewriter: %v", err)
	}
	res, err := rw.Rewrite(context.Background(), Request{Text: "hello", Persona: "a scientist"})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.Provider != staticProviderName {
		t.Fatalf("Provider = %q, want static fallback", res.Provider)
	}
	if capturedReason != "http_request" {
		t.Fatalf("fallback reason = %q", capturedReason)
	}
}

func TestOpenAIRewriterFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var capturedReason string
	rw, err := NewOpenAIRewriter(OpenAIOptions{
		APIKey:     "key",
		BaseURL:    srv.URL,
		Fallback:   NewStaticRewriter(),
		OnFallback: func(reason string, err error) { capturedReason = reason },
	})
	if err != nil {
		t.Fatalf("NewOpenAIRewriter: %v", err)
	}
	res, err := rw.Rewrite(context.Background(), Request{Text: "hello", Persona: "a manager"})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.Provider != staticProviderName {
		t.Fatalf("Provider = %q", res.Provider)
	}
	if capturedReason != "http_500" {
		t.Fatalf("fallback reason = %q", capturedReason)
	}
}

func TestNewOpenAIRewriterRequiresKey(t *testing.T) {
	if _, err := NewOpenAIRewriter(OpenAIOptions{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestStaticRewriterIsDeterministic(t *testing.T) {
	res, err := NewStaticRewriter().Rewrite(context.Background(), Request{Text: "  hello world  ", Persona: "a teenager"})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.Text != "For someone who is a teenager: hello world" {
		t.Fatalf("text = %q", res.Text)
	}
	if res.Provider != staticProviderName {
		t.Fatalf("provider = %q", res.Provider)
	}
}
