package domain

// SectionKind labels one semantic category of an analysis document.
type SectionKind string

const (
	SectionHeader          SectionKind = "header"
	SectionBasicInfo       SectionKind = "basic_info"
	SectionPremiumInfo     SectionKind = "premium_info"
	SectionCoverage        SectionKind = "coverage"
	SectionAdvantages      SectionKind = "advantages"
	SectionRefund          SectionKind = "refund"
	SectionTarget          SectionKind = "target"
	SectionScore           SectionKind = "score"
	SectionFallbackContent SectionKind = "fallback_content"
)

// DegradationMode records whether a document was produced by structured
// segmentation or by whole-document fallback extraction.
type DegradationMode string

const (
	DegradationStructured DegradationMode = "structured"
	DegradationFallback   DegradationMode = "fallback"
)

// SplitStrategy identifies which delimiter cascade split a comparison text.
type SplitStrategy string

const (
	SplitCompoundDelimiter SplitStrategy = "compound_delimiter"
	SplitShortDelimiter    SplitStrategy = "short_delimiter"
	SplitHeaderLiteral     SplitStrategy = "header_literal"
	SplitLineClassifier    SplitStrategy = "line_classifier"
)

// CoverageBand classifies text-extraction coverage for presentation.
type CoverageBand string

const (
	CoverageBandHigh   CoverageBand = "high"   // >= 90% of pages yielded text
	CoverageBandMedium CoverageBand = "medium" // >= 70%
	CoverageBandLow    CoverageBand = "low"
)

// AnalysisMode selects the assembly path for a raw analysis text.
type AnalysisMode string

const (
	AnalysisModeSingle     AnalysisMode = "single"
	AnalysisModeComparison AnalysisMode = "comparison"
)

// AnalysisStatus represents the lifecycle of a stored analysis.
type AnalysisStatus string

const (
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
)

// FieldName enumerates the fields the extractor knows how to pull out of
// analysis text.
type FieldName string

const (
	FieldProductName    FieldName = "productName"
	FieldProductCode    FieldName = "productCode"
	FieldProductType    FieldName = "productType"
	FieldCompanyName    FieldName = "companyName"
	FieldMonthlyPremium FieldName = "monthlyPremium"
	FieldPaymentMethod  FieldName = "paymentMethod"
	FieldPaymentPeriod  FieldName = "paymentPeriod"
)

// BasicInfoFields are the fields extracted from a basic_info section.
var BasicInfoFields = []FieldName{
	FieldProductName,
	FieldProductCode,
	FieldProductType,
	FieldCompanyName,
}

// PremiumInfoFields are the fields extracted from a premium_info section.
var PremiumInfoFields = []FieldName{
	FieldMonthlyPremium,
	FieldPaymentMethod,
	FieldPaymentPeriod,
}

// AllFields lists every extractable field in display order.
var AllFields = []FieldName{
	FieldProductName,
	FieldProductCode,
	FieldProductType,
	FieldCompanyName,
	FieldMonthlyPremium,
	FieldPaymentMethod,
	FieldPaymentPeriod,
}
