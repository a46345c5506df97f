package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Section is a contiguous, labeled span of an analysis document.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Lines []string    `json:"lines"`
	Text  string      `json:"text"` // Lines joined with newline
}

// ExtractedField is the result of running the pattern library for one field.
// Found=false is a normal outcome for adversarial input, not an error.
type ExtractedField struct {
	Name       FieldName `json:"name"`
	Value      string    `json:"value"`
	Found      bool      `json:"found"`
	Provenance string    `json:"provenance"` // which rule matched, e.g. "rule:2", "labelscan", "fallback:0"
	Normalized bool      `json:"normalized"` // currency/format normalization applied
}

// AnalysisDocument is the structured form of one product's analysis text.
// Sections preserve document order; RawText is the untouched input, always
// available for verbatim display.
type AnalysisDocument struct {
	Sections        []Section                    `json:"sections"`
	Fields          map[FieldName]ExtractedField `json:"fields"`
	DegradationMode DegradationMode              `json:"degradation_mode"`
	RawText         string                       `json:"raw_text"`
}

// SectionByKind returns the section of the given kind, if present.
func (d *AnalysisDocument) SectionByKind(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Field returns the extracted field by name, if it resolved to a value.
func (d *AnalysisDocument) Field(name FieldName) (ExtractedField, bool) {
	f, ok := d.Fields[name]
	return f, ok && f.Found
}

// ComparisonDocument is the structured form of a two-product comparison text.
type ComparisonDocument struct {
	ProductA      *AnalysisDocument `json:"product_a"`
	ProductB      *AnalysisDocument `json:"product_b"`
	SplitStrategy SplitStrategy     `json:"split_strategy"`
}

// ExtractionStats describes how the source document's text was obtained.
// Produced by the external text-extraction collaborator, consumed here only
// for coverage badge computation.
type ExtractionStats struct {
	TotalPages       int `json:"total_pages"`
	PagesWithText    int `json:"pages_with_text"`
	OCREnhancedPages int `json:"ocr_enhanced_pages"`
	HybridPages      int `json:"hybrid_pages"`
}

// Analysis is a stored analysis result. Immutable after assembly;
// re-analysis produces a new row.
type Analysis struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Mode            AnalysisMode    `db:"mode" json:"mode"`
	ProductName     string          `db:"product_name" json:"product_name"`
	ProductNameB    string          `db:"product_name_b" json:"product_name_b,omitempty"`
	RawText         string          `db:"raw_text" json:"-"`
	Result          json.RawMessage `db:"result" json:"result"` // AnalysisDocument or ComparisonDocument
	DegradationMode DegradationMode `db:"degradation_mode" json:"degradation_mode"`
	SplitStrategy   SplitStrategy   `db:"split_strategy" json:"split_strategy,omitempty"`
	CoverageBand    CoverageBand    `db:"coverage_band" json:"coverage_band,omitempty"`
	SummarizerModel string          `db:"summarizer_model" json:"summarizer_model,omitempty"`
	Status          AnalysisStatus  `db:"status" json:"status"`
	AnalysisError   string          `db:"analysis_error" json:"analysis_error,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
