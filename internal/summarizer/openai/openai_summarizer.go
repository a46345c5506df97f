package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"inscan/internal/config"
	"inscan/internal/domain"
	"inscan/internal/port"
	"inscan/internal/summarizer"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Summarizer implements port.Summarizer using the OpenAI Chat Completions API.
type Summarizer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewSummarizer creates an OpenAI-based summarizer from a provider config.
func NewSummarizer(cfg *config.SummarizerProviderConfig) *Summarizer {
	return newSummarizer(cfg, apiURL)
}

// NewSummarizerWithEndpoint creates a summarizer pointing at a custom API endpoint (for testing).
func NewSummarizerWithEndpoint(cfg *config.SummarizerProviderConfig, endpoint string) *Summarizer {
	return newSummarizer(cfg, endpoint)
}

func newSummarizer(cfg *config.SummarizerProviderConfig, endpoint string) *Summarizer {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Summarizer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *Summarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	var system, prompt string
	if input.Mode == domain.AnalysisModeComparison {
		system = summarizer.ComparisonSystemPrompt
		prompt = summarizer.BuildComparisonPrompt(
			input.NameA, summarizer.NormalizeCurrencyUnits(input.TextA),
			input.NameB, summarizer.NormalizeCurrencyUnits(input.TextB),
		)
	} else {
		system = summarizer.ProductSystemPrompt
		prompt = summarizer.BuildProductAnalysisPrompt(input.NameA, summarizer.NormalizeCurrencyUnits(input.TextA))
	}

	reqBody := map[string]interface{}{
		"model":       s.model,
		"temperature": 0.3,
		"max_tokens":  4000,
		"messages": []map[string]interface{}{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := summarizer.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, summarizer.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, s.model, prompt)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model, prompt string) (*port.SummarizeOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return nil, fmt.Errorf("empty analysis text in response")
	}

	return &port.SummarizeOutput{
		AnalysisText: text,
		ModelUsed:    model,
		PromptUsed:   prompt,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
