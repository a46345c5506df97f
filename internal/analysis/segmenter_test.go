package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inscan/internal/domain"
)

const fullAnalysisText = `🏷️ 상품 분석: 무배당 튼튼건강보험
## 📋 기본 정보
- 상품명: 무배당 튼튼건강보험
- 회사: 한화생명
## 💰 보험료 정보
- 월보험료: 92,540원
## 🛡️ 핵심 보장 내용
- 암진단비 3,000만원
## ⭐ 경쟁 우위
- 갱신 없음
## 💎 해약환급금
- 10년 시점 70%
## 🎯 추천 대상
- 30대 직장인
## 📊 종합 점수
- 85점
`

func TestSegment_AllSectionKinds(t *testing.T) {
	sections := Segment(fullAnalysisText)
	require.Len(t, sections, 8)

	wantOrder := []domain.SectionKind{
		domain.SectionHeader,
		domain.SectionBasicInfo,
		domain.SectionPremiumInfo,
		domain.SectionCoverage,
		domain.SectionAdvantages,
		domain.SectionRefund,
		domain.SectionTarget,
		domain.SectionScore,
	}
	for i, want := range wantOrder {
		assert.Equal(t, want, sections[i].Kind, "section %d", i)
	}

	basic := sections[1]
	assert.Equal(t, "## 📋 기본 정보", basic.Lines[0])
	assert.Contains(t, basic.Text, "상품명: 무배당 튼튼건강보험")
}

func TestSegment_HeadingWithoutGlyph(t *testing.T) {
	text := "## 기본 정보\n상품명: 테스트\n## 보험료 정보\n월보험료: 10,000원\n"
	sections := Segment(text)
	require.Len(t, sections, 2)
	assert.Equal(t, domain.SectionBasicInfo, sections[0].Kind)
	assert.Equal(t, domain.SectionPremiumInfo, sections[1].Kind)
}

func TestSegment_DeepHeadingIsContent(t *testing.T) {
	text := "## 기본 정보\n### 기본 정보 상세\n상품명: 테스트\n"
	sections := Segment(text)
	require.Len(t, sections, 1)
	assert.Contains(t, sections[0].Lines, "### 기본 정보 상세")
}

func TestSegment_PreambleDropped(t *testing.T) {
	text := "분석 결과를 알려드립니다.\n잘 읽어주세요.\n## 📋 기본 정보\n상품명: 테스트\n"
	sections := Segment(text)
	require.Len(t, sections, 1)
	assert.Equal(t, domain.SectionBasicInfo, sections[0].Kind)
	assert.NotContains(t, sections[0].Text, "알려드립니다")
}

func TestSegment_RepeatedKindOverwritesInPlace(t *testing.T) {
	text := "## 📋 기본 정보\n첫 번째 내용\n## 💰 보험료 정보\n월보험료: 10,000원\n## 📋 기본 정보\n두 번째 내용\n"
	sections := Segment(text)
	require.Len(t, sections, 2)

	assert.Equal(t, domain.SectionBasicInfo, sections[0].Kind)
	assert.Contains(t, sections[0].Text, "두 번째 내용")
	assert.NotContains(t, sections[0].Text, "첫 번째 내용")
	assert.Equal(t, domain.SectionPremiumInfo, sections[1].Kind)
}

func TestSegment_EmptyInput(t *testing.T) {
	assert.Empty(t, Segment(""))
	assert.Empty(t, Segment("\n\n\n"))
}

func TestSegment_BoundaryGlyphNeedsKeyword(t *testing.T) {
	// A glyph without any of its co-occurring keywords is plain content.
	text := "## 📋 기본 정보\n📊 차트를 보세요\n"
	sections := Segment(text)
	require.Len(t, sections, 1)
	assert.Contains(t, sections[0].Lines, "📊 차트를 보세요")
}

func TestSegment_Reentrant(t *testing.T) {
	first := Segment(fullAnalysisText)
	second := Segment(fullAnalysisText)
	assert.Equal(t, first, second)
}

func TestSegmentationFailed(t *testing.T) {
	assert.True(t, SegmentationFailed(nil))
	assert.True(t, SegmentationFailed([]domain.Section{}))

	onlyTarget := Segment("## 🎯 추천 대상\n- 30대 직장인\n")
	require.NotEmpty(t, onlyTarget)
	assert.True(t, SegmentationFailed(onlyTarget))

	withBasic := Segment("## 📋 기본 정보\n상품명: 테스트\n")
	assert.False(t, SegmentationFailed(withBasic))

	withPremium := Segment("## 💰 보험료 정보\n월보험료: 10,000원\n")
	assert.False(t, SegmentationFailed(withPremium))
}

func TestSegment_SectionTextMatchesLines(t *testing.T) {
	for _, sec := range Segment(fullAnalysisText) {
		assert.Equal(t, strings.Join(sec.Lines, "\n"), sec.Text)
	}
}
