// Package rewrite hosts the model providers that turn source text into a
// persona-adjusted rendition. Providers degrade to a fallback on transport or
// parse failures; quota exhaustion at the model vendor is surfaced as an
// explicit error instead so the caller can tell the user.
package rewrite

import (
	"context"
	"fmt"
	"strings"
)

const (
	openAIProviderName = "openai"
	geminiProviderName = "gemini"
	staticProviderName = "static"
)

const systemPrompt = "Rewrite text for different audiences. Be concise and clear."

type Request struct {
	Text    string
	Persona string
}

type Result struct {
	Text     string `json:"text"`
	Provider string `json:"-"`
}

type Rewriter interface {
	Rewrite(ctx context.Context, req Request) (*Result, error)
}

func userPrompt(req Request) string {
	return fmt.Sprintf("Rewrite this for someone who is %s:\n\n%s", req.Persona, req.Text)
}

// StaticRewriter is the offline fallback. It produces a deterministic framing
// of the input so the product flow stays demonstrable without an API key.
type StaticRewriter struct{}

func NewStaticRewriter() *StaticRewriter {
	return &StaticRewriter{}
}

func (s *StaticRewriter) Rewrite(_ context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	return &Result{
		Text:     fmt.Sprintf("For someone who is %s: %s", req.Persona, text),
		Provider: staticProviderName,
	}, nil
}

var _ Rewriter = (*StaticRewriter)(nil)
