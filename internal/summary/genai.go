package summary

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const genAIPrompt = `Summarize the following line diff of a SQL script for a non-technical reviewer.
Lines starting with "- " were removed, lines starting with "+ " were added, lines starting with "? " mark changed characters.
Write plain prose of at least %d words. Do not repeat the diff.

%s`

// GenAI summarizes with a Gemini model
type GenAI struct {
	client *genai.Client
	model  string
}

// NewGenAI creates the Gemini backend. Build it once at startup and share it.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAI{client: client, model: model}, nil
}

// SummarizeText generates with temperature 0 and top-k 1 so decoding is greedy
func (g *GenAI) SummarizeText(ctx context.Context, text string, minLen, maxLen int) (string, error) {
	temperature := float32(0)
	topK := float32(1)

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(fmt.Sprintf(genAIPrompt, minLen, text)),
		&genai.GenerateContentConfig{
			Temperature:     &temperature,
			TopK:            &topK,
			CandidateCount:  1,
			MaxOutputTokens: int32(maxLen),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	out := resp.Text()
	if out == "" {
		return "", fmt.Errorf("GenAI returned no candidates")
	}
	return out, nil
}

// Name returns the backend name
func (g *GenAI) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
