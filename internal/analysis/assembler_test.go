package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inscan/internal/domain"
)

func TestAssemble_Structured(t *testing.T) {
	text := "📋 기본 정보\n상품명: 테스트보험\n💰 보험료 정보\n월보험료: 50000\n"

	doc := Assemble(text)
	require.NotNil(t, doc)
	assert.Equal(t, domain.DegradationStructured, doc.DegradationMode)
	assert.Equal(t, text, doc.RawText)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, domain.SectionBasicInfo, doc.Sections[0].Kind)
	assert.Equal(t, domain.SectionPremiumInfo, doc.Sections[1].Kind)

	name, ok := doc.Field(domain.FieldProductName)
	require.True(t, ok)
	assert.Equal(t, "테스트보험", name.Value)

	premium, ok := doc.Field(domain.FieldMonthlyPremium)
	require.True(t, ok)
	assert.Equal(t, "50,000원", premium.Value)
	assert.True(t, premium.Normalized)

	_, ok = doc.Field(domain.FieldCompanyName)
	assert.False(t, ok)
}

func TestAssemble_FullTextRetryForMisplacedField(t *testing.T) {
	// The company name sits outside the basic_info section; the second pass
	// over the whole text recovers it.
	text := "📋 기본 정보\n상품명: 테스트보험\n💰 보험료 정보\n월보험료: 50000\n회사: 한화생명\n"

	doc := Assemble(text)
	require.Equal(t, domain.DegradationStructured, doc.DegradationMode)

	company, ok := doc.Field(domain.FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "한화생명", company.Value)
}

func TestAssemble_FallbackOnUnstructuredText(t *testing.T) {
	doc := Assemble("삼성 암보험 코드AB1234")
	require.NotNil(t, doc)
	assert.Equal(t, domain.DegradationFallback, doc.DegradationMode)

	company, ok := doc.Field(domain.FieldCompanyName)
	require.True(t, ok)
	assert.Equal(t, "삼성", company.Value)

	code, ok := doc.Field(domain.FieldProductCode)
	require.True(t, ok)
	assert.Equal(t, "AB1234", code.Value)

	// Resolved basic fields are materialized as a synthetic section.
	basic, found := doc.SectionByKind(domain.SectionBasicInfo)
	require.True(t, found)
	assert.Contains(t, basic.Text, "회사: 삼성")
	assert.Contains(t, basic.Text, "상품코드: AB1234")

	// Nothing premium-shaped resolved.
	_, found = doc.SectionByKind(domain.SectionPremiumInfo)
	assert.False(t, found)

	// The original text survives verbatim for display.
	fallback, found := doc.SectionByKind(domain.SectionFallbackContent)
	require.True(t, found)
	assert.Equal(t, "삼성 암보험 코드AB1234", fallback.Text)
}

func TestAssemble_FallbackWhenKeySectionsMissing(t *testing.T) {
	// Recognizable sections exist but neither basic_info nor premium_info,
	// which counts as a segmentation failure.
	doc := Assemble("## 🎯 추천 대상\n- 30대 직장인\n")
	assert.Equal(t, domain.DegradationFallback, doc.DegradationMode)
}

func TestAssemble_FallbackWithNoFields(t *testing.T) {
	doc := Assemble("의미 없는 텍스트")
	assert.Equal(t, domain.DegradationFallback, doc.DegradationMode)
	for _, field := range domain.AllFields {
		_, ok := doc.Field(field)
		assert.False(t, ok, "field %s", field)
	}

	// No synthetic field sections, only the verbatim text.
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, domain.SectionFallbackContent, doc.Sections[0].Kind)
	assert.Equal(t, "의미 없는 텍스트", doc.Sections[0].Text)
}

func TestAssembleComparison(t *testing.T) {
	text := "📋 기본 정보\n상품명: 보험A\n💰 보험료 정보\n월보험료: 10000\n" +
		"## 📊 상품 B 분석\n📋 기본 정보\n상품명: 보험B\n💰 보험료 정보\n월보험료: 20000\n"

	cmp := AssembleComparison(text)
	require.NotNil(t, cmp)
	assert.Equal(t, domain.SplitCompoundDelimiter, cmp.SplitStrategy)

	require.NotNil(t, cmp.ProductA)
	nameA, ok := cmp.ProductA.Field(domain.FieldProductName)
	require.True(t, ok)
	assert.Equal(t, "보험A", nameA.Value)

	require.NotNil(t, cmp.ProductB)
	nameB, ok := cmp.ProductB.Field(domain.FieldProductName)
	require.True(t, ok)
	assert.Equal(t, "보험B", nameB.Value)
	assert.Equal(t, domain.DegradationStructured, cmp.ProductB.DegradationMode)
}

func TestAssembleComparison_DegenerateSecondHalf(t *testing.T) {
	// No delimiter and no product B mention: everything is product A and the
	// empty B half degrades to a fieldless fallback document.
	text := "📋 기본 정보\n상품명: 보험A\n💰 보험료 정보\n월보험료: 10000\n"

	cmp := AssembleComparison(text)
	assert.Equal(t, domain.SplitLineClassifier, cmp.SplitStrategy)
	assert.Equal(t, domain.DegradationStructured, cmp.ProductA.DegradationMode)
	assert.Equal(t, domain.DegradationFallback, cmp.ProductB.DegradationMode)
	assert.Empty(t, cmp.ProductB.Sections)
}
