package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"inscan/internal/domain"
)

func TestSplit_CompoundDelimiter(t *testing.T) {
	text := "상품 A 내용\n## 📊 상품 B 분석\n상품 B 내용\n"
	a, b, strategy := Split(text)

	assert.Equal(t, domain.SplitCompoundDelimiter, strategy)
	assert.Equal(t, "상품 A 내용\n", a)
	assert.True(t, strings.HasPrefix(b, "## 📊 상품 B 분석"))
	assert.Contains(t, b, "상품 B 내용")
}

func TestSplit_ShortDelimiter(t *testing.T) {
	text := "상품 A 내용\n상품 B 분석\n상품 B 내용\n"
	a, b, strategy := Split(text)

	assert.Equal(t, domain.SplitShortDelimiter, strategy)
	assert.Equal(t, "상품 A 내용\n", a)
	assert.True(t, strings.HasPrefix(b, "상품 B 분석"))
}

func TestSplit_HeaderLiteral(t *testing.T) {
	text := "상품 A 내용\n## 상품 B\n내용\n"
	_, b, strategy := Split(text)

	assert.Equal(t, domain.SplitHeaderLiteral, strategy)
	assert.True(t, strings.HasPrefix(b, "## 상품 B"))
}

func TestSplit_StrategyPriority(t *testing.T) {
	// Both delimiters present: the compound form wins even when the shorter
	// one appears first in the text.
	text := "서두에 상품 B 분석 언급\n## 📊 상품 B 분석\n상품 B 내용\n"
	_, b, strategy := Split(text)

	assert.Equal(t, domain.SplitCompoundDelimiter, strategy)
	assert.True(t, strings.HasPrefix(b, "## 📊 상품 B 분석"))
}

func TestSplit_LineClassifier(t *testing.T) {
	text := "상품 A 내용\n계약 조건 설명\n두 번째 상품은 보장이 더 넓습니다\n월보험료: 20,000원\n"
	a, b, strategy := Split(text)

	assert.Equal(t, domain.SplitLineClassifier, strategy)
	assert.NotContains(t, a, "두 번째 상품")
	// The triggering line lacks a heading, so a synthetic one is prepended.
	assert.True(t, strings.HasPrefix(b, delimCompound))
	assert.Contains(t, b, "두 번째 상품은 보장이 더 넓습니다")
	assert.Contains(t, b, "월보험료: 20,000원")
}

func TestSplit_LineClassifierMidLineMarker(t *testing.T) {
	text := "상품 A 내용\n이제부터 상품 B 내용을 설명합니다\n월보험료: 20,000원\n"
	a, b, strategy := Split(text)

	assert.Equal(t, domain.SplitLineClassifier, strategy)
	assert.Equal(t, "상품 A 내용", a)
	assert.NotEmpty(t, b)
	assert.True(t, strings.HasPrefix(b, delimCompound))
	assert.Contains(t, b, "이제부터 상품 B 내용을 설명합니다")
	assert.Contains(t, b, "월보험료: 20,000원")
}

func TestSplit_LineClassifierBulletMarker(t *testing.T) {
	text := "상품 A 내용\n- 상품B 요약\n내용\n"
	_, b, strategy := Split(text)

	assert.Equal(t, domain.SplitLineClassifier, strategy)
	assert.Contains(t, b, "상품B 요약")
}

func TestSplit_NoSecondProduct(t *testing.T) {
	text := "단일 상품 분석 내용\n월보험료: 10,000원\n"
	a, b, strategy := Split(text)

	assert.Equal(t, domain.SplitLineClassifier, strategy)
	assert.Equal(t, text, a)
	assert.Empty(t, b)
}

func TestSplit_EmptyInput(t *testing.T) {
	a, b, strategy := Split("")
	assert.Equal(t, domain.SplitLineClassifier, strategy)
	assert.Empty(t, a)
	assert.Empty(t, b)
}
