package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"inscan/internal/analysis"
	"inscan/internal/domain"
	"inscan/internal/port"
)

// AnalyzeInput is the DTO for analyzing one product's document text.
type AnalyzeInput struct {
	ProductName string
	Text        string
	Stats       domain.ExtractionStats
}

// CompareInput is the DTO for comparing two products.
type CompareInput struct {
	ProductNameA string
	TextA        string
	StatsA       domain.ExtractionStats
	ProductNameB string
	TextB        string
	StatsB       domain.ExtractionStats
}

// AssembleInput is the DTO for structuring an already produced analysis text
// without calling the summarizer.
type AssembleInput struct {
	ProductName  string
	ProductNameB string
	Mode         domain.AnalysisMode
	Text         string
}

// AnalysisService defines the analysis pipeline contract.
type AnalysisService interface {
	AnalyzeProduct(ctx context.Context, input *AnalyzeInput) (*domain.Analysis, error)
	CompareProducts(ctx context.Context, input *CompareInput) (*domain.Analysis, error)
	Assemble(ctx context.Context, input *AssembleInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error)
	GetRawText(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	repo       port.AnalysisRepository
	summarizer port.Summarizer
	storage    port.ObjectStorage
	bucket     string
}

// NewAnalysisService creates a new AnalysisService implementation. The
// summarizer may be nil, in which case only Assemble works and the analyze
// operations fail with ErrSummarizerUnavailable. The storage may be nil, in
// which case Delete leaves any exported report object behind.
func NewAnalysisService(repo port.AnalysisRepository, summarizer port.Summarizer, storage port.ObjectStorage, bucket string) AnalysisService {
	return &analysisService{repo: repo, summarizer: summarizer, storage: storage, bucket: bucket}
}

// AnalyzeProduct runs the full single-product pipeline: summarize the
// document text, assemble the result into a structured document, persist it.
// A summarizer that produces unusable text does not fail the request; the
// assembly degrades and the document records that.
func (s *analysisService) AnalyzeProduct(ctx context.Context, input *AnalyzeInput) (*domain.Analysis, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, domain.ErrEmptyText
	}
	if s.summarizer == nil {
		return nil, domain.ErrSummarizerUnavailable
	}

	record := &domain.Analysis{
		Mode:        domain.AnalysisModeSingle,
		ProductName: input.ProductName,
		Status:      domain.AnalysisStatusCompleted,
	}
	if band, ok := analysis.CoverageBandFor(input.Stats); ok {
		record.CoverageBand = band
	}

	out, err := s.summarizer.Summarize(ctx, port.SummarizeInput{
		Mode:  domain.AnalysisModeSingle,
		TextA: input.Text,
		NameA: input.ProductName,
	})
	analysisText := ""
	if err != nil {
		// Degrade to structuring the raw extracted text directly.
		log.Printf("service.AnalyzeProduct: summarizer failed, assembling raw text: %v", err)
		record.Status = domain.AnalysisStatusFailed
		record.AnalysisError = err.Error()
		analysisText = input.Text
	} else {
		analysisText = out.AnalysisText
		record.SummarizerModel = out.ModelUsed
	}

	doc := analysis.Assemble(analysisText)
	record.RawText = analysisText
	record.DegradationMode = doc.DegradationMode

	result, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("service.AnalyzeProduct: marshaling result: %w", err)
	}
	record.Result = result

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CompareProducts runs the two-product pipeline: one comparison summary,
// split into halves, each assembled independently.
func (s *analysisService) CompareProducts(ctx context.Context, input *CompareInput) (*domain.Analysis, error) {
	if strings.TrimSpace(input.TextA) == "" {
		return nil, domain.ErrEmptyText
	}
	if strings.TrimSpace(input.TextB) == "" {
		return nil, domain.ErrMissingSecondText
	}
	if s.summarizer == nil {
		return nil, domain.ErrSummarizerUnavailable
	}

	record := &domain.Analysis{
		Mode:         domain.AnalysisModeComparison,
		ProductName:  input.ProductNameA,
		ProductNameB: input.ProductNameB,
		Status:       domain.AnalysisStatusCompleted,
	}
	record.CoverageBand = worseBand(input.StatsA, input.StatsB)

	out, err := s.summarizer.Summarize(ctx, port.SummarizeInput{
		Mode:  domain.AnalysisModeComparison,
		TextA: input.TextA,
		NameA: input.ProductNameA,
		TextB: input.TextB,
		NameB: input.ProductNameB,
	})
	analysisText := ""
	if err != nil {
		log.Printf("service.CompareProducts: summarizer failed, assembling raw texts: %v", err)
		record.Status = domain.AnalysisStatusFailed
		record.AnalysisError = err.Error()
		// Stitch the raw texts with the canonical delimiter so the splitter
		// still separates them.
		analysisText = input.TextA + "\n## 📊 상품 B 분석\n" + input.TextB
	} else {
		analysisText = out.AnalysisText
		record.SummarizerModel = out.ModelUsed
	}

	cmp := analysis.AssembleComparison(analysisText)
	record.RawText = analysisText
	record.SplitStrategy = cmp.SplitStrategy
	record.DegradationMode = combinedDegradation(cmp)

	result, err := json.Marshal(cmp)
	if err != nil {
		return nil, fmt.Errorf("service.CompareProducts: marshaling result: %w", err)
	}
	record.Result = result

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Assemble structures a caller-supplied analysis text without invoking the
// summarizer. Used for re-structuring stored raw text and for clients that
// bring their own LLM output.
func (s *analysisService) Assemble(ctx context.Context, input *AssembleInput) (*domain.Analysis, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, domain.ErrEmptyText
	}

	record := &domain.Analysis{
		Mode:         input.Mode,
		ProductName:  input.ProductName,
		ProductNameB: input.ProductNameB,
		RawText:      input.Text,
		Status:       domain.AnalysisStatusCompleted,
	}
	if record.Mode == "" {
		record.Mode = domain.AnalysisModeSingle
	}

	var (
		result []byte
		err    error
	)
	if record.Mode == domain.AnalysisModeComparison {
		cmp := analysis.AssembleComparison(input.Text)
		record.SplitStrategy = cmp.SplitStrategy
		record.DegradationMode = combinedDegradation(cmp)
		result, err = json.Marshal(cmp)
	} else {
		doc := analysis.Assemble(input.Text)
		record.DegradationMode = doc.DegradationMode
		result, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("service.Assemble: marshaling result: %w", err)
	}
	record.Result = result

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *analysisService) GetRawText(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return a.RawText, nil
}

// Delete removes the analysis record and, best effort, the exported report
// workbook it may have left in object storage.
func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.storage != nil {
		key := reportObjectKey(id)
		if err := s.storage.Delete(ctx, s.bucket, key); err != nil {
			log.Printf("service.Delete: removing report object %s: %v", key, err)
		}
	}
	return nil
}

// combinedDegradation reports fallback when either half degraded, so the
// caller sees a single advisory flag for the whole comparison.
func combinedDegradation(cmp *domain.ComparisonDocument) domain.DegradationMode {
	if cmp.ProductA.DegradationMode == domain.DegradationFallback ||
		cmp.ProductB.DegradationMode == domain.DegradationFallback {
		return domain.DegradationFallback
	}
	return domain.DegradationStructured
}

// worseBand returns the lower coverage band of the two source documents.
func worseBand(a, b domain.ExtractionStats) domain.CoverageBand {
	bandA, okA := analysis.CoverageBandFor(a)
	bandB, okB := analysis.CoverageBandFor(b)
	switch {
	case !okA && !okB:
		return ""
	case !okA:
		return bandB
	case !okB:
		return bandA
	}
	if bandRank(bandA) <= bandRank(bandB) {
		return bandA
	}
	return bandB
}

func bandRank(b domain.CoverageBand) int {
	switch b {
	case domain.CoverageBandLow:
		return 0
	case domain.CoverageBandMedium:
		return 1
	default:
		return 2
	}
}
