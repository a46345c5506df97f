package port

import (
	"context"

	"inscan/internal/domain"
)

// SummarizeInput carries the extracted document text to analyze. TextB and
// NameB are set only in comparison mode.
type SummarizeInput struct {
	Mode  domain.AnalysisMode
	TextA string
	NameA string
	TextB string
	NameB string
}

// SummarizeOutput contains the analysis text produced by an LLM summarizer.
type SummarizeOutput struct {
	AnalysisText string
	ModelUsed    string
	PromptUsed   string
}

// Summarizer abstracts LLM-based insurance analysis generation.
type Summarizer interface {
	Summarize(ctx context.Context, input SummarizeInput) (*SummarizeOutput, error)
}
