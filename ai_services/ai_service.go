package ai_services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-allocator/utilities"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"
)

// TextGenerator é qualquer modelo que transforma um prompt em texto.
// ok=false indica que o modelo não devolveu texto nenhum.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (text string, ok bool, err error)
}

// GeminiClient chama o modelo generativo do Google.
type GeminiClient struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utilities.LogInfo("Circuit breaker '%s' mudou de %s para %s", name, from.String(), to.String())
		},
	})

	return &GeminiClient{client: client, model: model, breaker: breaker}, nil
}

// GenerateText faz uma única chamada ao modelo, sem retry e sem streaming.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, bool, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	})
	if err != nil {
		return "", false, fmt.Errorf("falha ao chamar o modelo %s: %w", g.model, err)
	}
	resp, _ := out.(*genai.GenerateContentResponse)
	text, ok := responseText(resp)
	return text, ok, nil
}

// responseText concatena as partes de texto do primeiro candidato.
func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	var sb strings.Builder
	found := false
	for _, part := range content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
		found = true
	}
	return sb.String(), found
}
