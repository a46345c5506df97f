package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inscan/internal/config"
	"inscan/internal/domain"
	"inscan/internal/port"
	"inscan/internal/summarizer"
	"inscan/internal/summarizer/openai"
)

func providerConfig() *config.SummarizerProviderConfig {
	return &config.SummarizerProviderConfig{
		Provider:     "openai",
		APIKey:       "test-key",
		DefaultModel: "gpt-4o-mini",
		TimeoutSecs:  5,
	}
}

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestSummarize_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse("## 📋 기본 정보\n상품명: 테스트보험")))
	}))
	defer srv.Close()

	s := openai.NewSummarizerWithEndpoint(providerConfig(), srv.URL)
	out, err := s.Summarize(context.Background(), port.SummarizeInput{
		Mode:  domain.AnalysisModeSingle,
		TextA: "원문 텍스트",
		NameA: "테스트보험",
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", out.ModelUsed)
	assert.Contains(t, out.AnalysisText, "상품명: 테스트보험")
	assert.Contains(t, out.PromptUsed, "테스트보험")

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.InDelta(t, 0.3, gotBody["temperature"], 0.001)
}

func TestSummarize_ComparisonPromptCarriesBothTexts(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse("비교 분석")))
	}))
	defer srv.Close()

	s := openai.NewSummarizerWithEndpoint(providerConfig(), srv.URL)
	_, err := s.Summarize(context.Background(), port.SummarizeInput{
		Mode:  domain.AnalysisModeComparison,
		TextA: "원문A",
		NameA: "보험A",
		TextB: "원문B",
		NameB: "보험B",
	})

	require.NoError(t, err)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Contains(t, gotBody.Messages[1].Content, "원문A")
	assert.Contains(t, gotBody.Messages[1].Content, "원문B")
	assert.Contains(t, gotBody.Messages[1].Content, "## 📊 상품 B 분석")
}

func TestSummarize_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := openai.NewSummarizerWithEndpoint(providerConfig(), srv.URL)
	_, err := s.Summarize(context.Background(), port.SummarizeInput{Mode: domain.AnalysisModeSingle, TextA: "원문", NameA: "상품"})

	require.Error(t, err)
	var rlErr *summarizer.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, "30s", rlErr.RetryAfter.String())
}

func TestSummarize_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := openai.NewSummarizerWithEndpoint(providerConfig(), srv.URL)
	_, err := s.Summarize(context.Background(), port.SummarizeInput{Mode: domain.AnalysisModeSingle, TextA: "원문", NameA: "상품"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSummarize_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	s := openai.NewSummarizerWithEndpoint(providerConfig(), srv.URL)
	_, err := s.Summarize(context.Background(), port.SummarizeInput{Mode: domain.AnalysisModeSingle, TextA: "원문", NameA: "상품"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
