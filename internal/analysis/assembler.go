package analysis

import (
	"strings"

	"inscan/internal/domain"
)

// Assemble converts one product's raw analysis text into a structured
// AnalysisDocument. Segmentation failure is not an error: the document is
// rebuilt through whole-document fallback extraction and flagged via
// DegradationMode so the presentation layer can show an advisory notice.
func Assemble(rawText string) *domain.AnalysisDocument {
	sections := Segment(rawText)
	if SegmentationFailed(sections) {
		return assembleFallback(rawText)
	}

	doc := &domain.AnalysisDocument{
		Sections:        sections,
		Fields:          make(map[domain.FieldName]domain.ExtractedField, len(domain.AllFields)),
		DegradationMode: domain.DegradationStructured,
		RawText:         rawText,
	}

	extractInto(doc, domain.SectionBasicInfo, domain.BasicInfoFields, rawText)
	extractInto(doc, domain.SectionPremiumInfo, domain.PremiumInfoFields, rawText)

	return doc
}

// extractInto extracts the given fields from the named section's joined
// text, then retries any unresolved field against the full raw text. Model
// output sometimes repeats key facts outside their nominal section.
func extractInto(doc *domain.AnalysisDocument, kind domain.SectionKind, fields []domain.FieldName, rawText string) {
	span := ""
	if sec, ok := doc.SectionByKind(kind); ok {
		span = sec.Text
	}
	for _, field := range fields {
		f := domain.ExtractedField{Name: field}
		if span != "" {
			f = Extract(field, span)
		}
		if !f.Found {
			f = Extract(field, rawText)
		}
		doc.Fields[field] = f
	}
}

// assembleFallback recovers a document when no usable sections were found.
// Every field is extracted from the whole text with the broader rule set,
// and minimal basic_info/premium_info sections are synthesized from the
// "label: value" lines that resolved. Fields that miss simply stay absent.
// The original text is kept as a fallback_content section so viewers still
// have something to render verbatim.
func assembleFallback(rawText string) *domain.AnalysisDocument {
	doc := &domain.AnalysisDocument{
		Fields:          make(map[domain.FieldName]domain.ExtractedField, len(domain.AllFields)),
		DegradationMode: domain.DegradationFallback,
		RawText:         rawText,
	}

	for _, field := range domain.AllFields {
		doc.Fields[field] = ExtractFallback(field, rawText)
	}

	if sec, ok := synthesizeSection(domain.SectionBasicInfo, domain.BasicInfoFields, doc.Fields); ok {
		doc.Sections = append(doc.Sections, sec)
	}
	if sec, ok := synthesizeSection(domain.SectionPremiumInfo, domain.PremiumInfoFields, doc.Fields); ok {
		doc.Sections = append(doc.Sections, sec)
	}
	if trimmed := strings.TrimSpace(rawText); trimmed != "" {
		doc.Sections = append(doc.Sections, domain.Section{
			Kind:  domain.SectionFallbackContent,
			Lines: strings.Split(trimmed, "\n"),
			Text:  trimmed,
		})
	}

	return doc
}

// synthesizeSection builds a minimal section from resolved fields. Returns
// false when no field in the group resolved; absent sections are normal in
// fallback mode.
func synthesizeSection(kind domain.SectionKind, fields []domain.FieldName, extracted map[domain.FieldName]domain.ExtractedField) (domain.Section, bool) {
	var lines []string
	for _, field := range fields {
		f, ok := extracted[field]
		if !ok || !f.Found {
			continue
		}
		lines = append(lines, fieldLabels[field]+": "+f.Value)
	}
	if len(lines) == 0 {
		return domain.Section{}, false
	}
	return domain.Section{
		Kind:  kind,
		Lines: lines,
		Text:  strings.Join(lines, "\n"),
	}, true
}

// AssembleComparison splits a two-product comparison text and assembles each
// half independently.
func AssembleComparison(rawText string) *domain.ComparisonDocument {
	textA, textB, strategy := Split(rawText)
	return &domain.ComparisonDocument{
		ProductA:      Assemble(textA),
		ProductB:      Assemble(textB),
		SplitStrategy: strategy,
	}
}
