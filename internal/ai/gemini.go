package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Summarizer produces natural-language answers over the advice pool.
type Summarizer interface {
	Summarize(ctx context.Context, advice []string) (string, error)
	Ask(ctx context.Context, advice []string, question string) (string, error)
}

// Config holds the generative model settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// GeminiSummarizer talks to the Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
	tokens int
}

// NewGeminiSummarizer dials the Gemini API with the configured key.
func NewGeminiSummarizer(ctx context.Context, cfg Config) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("dial gemini: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	tokens := cfg.MaxTokens
	if tokens <= 0 {
		tokens = 1024
	}
	return &GeminiSummarizer{client: client, model: model, tokens: tokens}, nil
}

// Close releases the underlying client.
func (g *GeminiSummarizer) Close() error {
	return g.client.Close()
}

// Summarize condenses the advice pool into themed study guidance.
func (g *GeminiSummarizer) Summarize(ctx context.Context, advice []string) (string, error) {
	prompt := "You are a study mentor. Summarize the following peer advice from senior students " +
		"into short themed bullet points a junior student can act on. Keep it under 200 words.\n\n" +
		numberedList(advice)
	return g.generate(ctx, prompt)
}

// Ask answers a student's question grounded only in the advice pool.
func (g *GeminiSummarizer) Ask(ctx context.Context, advice []string, question string) (string, error) {
	prompt := "You are a study mentor. Answer the student's question using only the peer advice below. " +
		"If the advice does not cover it, say so briefly.\n\nAdvice:\n" +
		numberedList(advice) +
		"\n\nQuestion: " + question
	return g.generate(ctx, prompt)
}

func (g *GeminiSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetMaxOutputTokens(int32(g.tokens))
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return out.String(), nil
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

// FallbackSummarizer answers without a model when no API key is configured.
// It returns a plain digest of the most recent advice so the endpoints stay
// functional in development.
type FallbackSummarizer struct{}

// NewFallbackSummarizer constructs the offline summarizer.
func NewFallbackSummarizer() *FallbackSummarizer {
	return &FallbackSummarizer{}
}

// Summarize lists the most recent advice verbatim.
func (f *FallbackSummarizer) Summarize(_ context.Context, advice []string) (string, error) {
	if len(advice) == 0 {
		return "No advice has been shared yet.", nil
	}
	limit := len(advice)
	if limit > 5 {
		limit = 5
	}
	var b strings.Builder
	b.WriteString("Recent advice from seniors:\n")
	for _, item := range advice[:limit] {
		b.WriteString("- " + item + "\n")
	}
	return b.String(), nil
}

// Ask echoes the question with the digest, since no model is available.
func (f *FallbackSummarizer) Ask(ctx context.Context, advice []string, question string) (string, error) {
	digest, err := f.Summarize(ctx, advice)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AI assistance is not configured. For %q, here is what seniors shared:\n%s", question, digest), nil
}
