package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inscan/internal/domain"
)

func TestExtract_BoldLabel(t *testing.T) {
	f := Extract(domain.FieldProductName, "- **상품명**: 무배당 튼튼건강보험")
	require.True(t, f.Found)
	assert.Equal(t, "무배당 튼튼건강보험", f.Value)
	assert.Equal(t, "rule:0", f.Provenance)
}

func TestExtract_PlainLabel(t *testing.T) {
	f := Extract(domain.FieldCompanyName, "회사: 한화생명")
	require.True(t, f.Found)
	assert.Equal(t, "한화생명", f.Value)
	assert.Equal(t, "rule:1", f.Provenance)
}

func TestExtract_LabelAndValueOnSeparateLines(t *testing.T) {
	f := Extract(domain.FieldProductName, "상품명:\n무배당 튼튼건강보험\n- 다음 항목")
	require.True(t, f.Found)
	assert.Equal(t, "무배당 튼튼건강보험", f.Value)
}

func TestExtract_ValueStopsAtNextBullet(t *testing.T) {
	span := "- **상품명**: 무배당 튼튼건강보험\n- **회사**: 한화생명"
	f := Extract(domain.FieldProductName, span)
	require.True(t, f.Found)
	assert.Equal(t, "무배당 튼튼건강보험", f.Value)
}

func TestExtract_LabelScanFallback(t *testing.T) {
	// Korean value defeats the code-shaped rules, so the line scan resolves it.
	f := Extract(domain.FieldProductCode, "- 상품코드: 없음")
	require.True(t, f.Found)
	assert.Equal(t, "없음", f.Value)
	assert.Equal(t, "labelscan", f.Provenance)
}

func TestExtract_Miss(t *testing.T) {
	f := Extract(domain.FieldProductName, "아무 관련 내용이 없는 문장입니다.")
	assert.False(t, f.Found)
	assert.Empty(t, f.Value)
	assert.Empty(t, f.Provenance)
}

func TestExtract_Idempotent(t *testing.T) {
	span := "- **월보험료**: 92,540원"
	first := Extract(domain.FieldMonthlyPremium, span)
	second := Extract(domain.FieldMonthlyPremium, span)
	assert.Equal(t, first, second)
}

func TestExtract_PremiumNormalization(t *testing.T) {
	f := Extract(domain.FieldMonthlyPremium, "- **월보험료**: 92540")
	require.True(t, f.Found)
	assert.Equal(t, "92,540원", f.Value)
	assert.True(t, f.Normalized)
}

func TestExtract_PremiumVerbatim(t *testing.T) {
	f := Extract(domain.FieldMonthlyPremium, "월보험료: 92,540원")
	require.True(t, f.Found)
	assert.Equal(t, "92,540원", f.Value)
	assert.True(t, f.Normalized)
}

func TestExtractFallback_CarrierRoster(t *testing.T) {
	f := ExtractFallback(domain.FieldCompanyName, "삼성 암보험 코드AB1234")
	require.True(t, f.Found)
	assert.Equal(t, "삼성", f.Value)
	assert.Equal(t, "fallback:1", f.Provenance)
}

func TestExtractFallback_LooseCode(t *testing.T) {
	f := ExtractFallback(domain.FieldProductCode, "삼성 암보험 코드AB1234")
	require.True(t, f.Found)
	assert.Equal(t, "AB1234", f.Value)
	assert.Equal(t, "fallback:0", f.Provenance)
}

func TestExtractFallback_ProductTypeNoun(t *testing.T) {
	f := ExtractFallback(domain.FieldProductType, "삼성 암보험 코드AB1234")
	require.True(t, f.Found)
	assert.Equal(t, "암보험", f.Value)
}

func TestExtractFallback_PrefersStandardRules(t *testing.T) {
	f := ExtractFallback(domain.FieldCompanyName, "회사: 한화생명")
	require.True(t, f.Found)
	assert.Equal(t, "한화생명", f.Value)
	assert.Equal(t, "rule:1", f.Provenance)
}

func TestNormalizeMonthlyPremium(t *testing.T) {
	tests := []struct {
		in         string
		want       string
		normalized bool
	}{
		{"92,540원", "92,540원", true},
		{"92540", "92,540원", true},
		{"50000", "50,000원", true},
		{"1000000", "1,000,000원", true},
		{"5만원", "5만원", true},
		{"abc", "abc", false},
		{"3.5", "3.5", false},
		{"**92540**", "92,540원", true},
	}
	for _, tc := range tests {
		got, normalized := NormalizeMonthlyPremium(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.normalized, normalized, "input %q", tc.in)
	}
}

func TestExtract_UnknownField(t *testing.T) {
	f := Extract(domain.FieldName("unknown"), "상품명: 테스트")
	assert.False(t, f.Found)
}
