// Package analysis turns free-form, loosely structured insurance analysis
// text (LLM output or extracted document text) into a structured document.
// Segmentation and extraction are pure pattern-level transforms: every step
// has a defined fallback and the package never fails on malformed input.
package analysis

import (
	"regexp"

	"inscan/internal/domain"
)

// fieldRules holds the ordered extraction rules for one field, most specific
// first. Every pattern has exactly one capture group and is evaluated
// case-insensitively against a span whose newlines were replaced by spaces.
type fieldRules struct {
	label    string // canonical label for the secondary line scan
	rules    []*regexp.Regexp
	fallback []*regexp.Regexp // broader rules for whole-document fallback extraction
}

// Known carrier names for the whole-document fallback roster match.
const carrierRoster = `삼성|한화|교보|현대해상|DB손해보험|DB손보|KB손해보험|KB손보|메리츠|롯데손해보험|흥국화재|흥국생명|동양생명|미래에셋|신한라이프|NH농협|AIA|푸르덴셜|라이나|악사|처브`

// Value character classes. Hyphen, asterisk, colon and pipe are deliberately
// excluded so a capture stops before the next "- **라벨**:" bullet once
// newlines have been flattened to spaces.
const (
	nameClass   = `[가-힣A-Za-z0-9()\[\]·&+./~ ]+`
	amountClass = `[0-9][0-9,.]*\s*(?:천원|만원|억원|원)?`
	codeClass   = `[A-Za-z0-9][A-Za-z0-9_-]*`
)

var fieldPatterns = map[domain.FieldName]fieldRules{
	domain.FieldProductName: {
		label: "상품명",
		rules: compile(
			`\*\*\s*상품명\s*\*\*\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`상품명\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`상품\s*(?:비교\s*)?분석\s*[:：]\s*(`+nameClass+`)`,
		),
		fallback: compile(
			`상품명\s*[:：]?\s*\**\s*(`+nameClass+`)`,
			`((?:무배당|유배당)\s*`+nameClass+`)`,
			`([가-힣A-Za-z0-9]{2,}(?:보험|플랜)(?:\([가-힣0-9]+\))?)`,
		),
	},
	domain.FieldProductCode: {
		label: "상품코드",
		rules: compile(
			`\*\*\s*상품\s*코드\s*\*\*\s*[:：]\s*\**(`+codeClass+`)`,
			`상품\s*코드\s*[:：]?\s*\**(`+codeClass+`)`,
			`\(([A-Za-z]{1,4}-?[0-9]{3,6})\)`,
		),
		fallback: compile(
			`코드\s*[:：]?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`,
			`\(([A-Za-z]{1,4}-?[0-9]{3,6})\)`,
		),
	},
	domain.FieldProductType: {
		label: "상품타입",
		rules: compile(
			`\*\*\s*상품\s*타입\s*\*\*\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`상품\s*타입\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`(어린이보험|종합보험|암보험|건강보험|종신보험|정기보험|치아보험|운전자보험|실손의료보험|저축보험|연금보험)`,
		),
		fallback: compile(
			`(어린이보험|종합보험|암보험|건강보험|종신보험|정기보험|치아보험|운전자보험|실손의료보험|저축보험|연금보험)`,
		),
	},
	domain.FieldCompanyName: {
		label: "회사",
		rules: compile(
			`\*\*\s*(?:보험\s*회사|회사명?|보험사)\s*\*\*\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`(?:보험\s*회사|회사명?|보험사)\s*[:：]\s*\**\s*(`+nameClass+`)`,
		),
		fallback: compile(
			`(?:보험\s*회사|회사명?|보험사)\s*[:：]?\s*\**\s*(`+nameClass+`)`,
			`(`+carrierRoster+`)`,
		),
	},
	domain.FieldMonthlyPremium: {
		label: "월보험료",
		rules: compile(
			`\*\*\s*월\s*보험료\s*\*\*\s*[:：]\s*\**\s*(`+amountClass+`)`,
			`월\s*보험료\s*[:：]\s*\**\s*(`+amountClass+`)`,
			`보험료\s*[:：]\s*\**\s*(`+amountClass+`)`,
		),
		fallback: compile(
			`월\s*보험료[^0-9]{0,12}(`+amountClass+`)`,
			`보험료[^0-9]{0,12}(`+amountClass+`)`,
			`([0-9][0-9,]{2,}\s*원)`,
		),
	},
	domain.FieldPaymentMethod: {
		label: "납입방식",
		rules: compile(
			`\*\*\s*납입\s*방식\s*\*\*\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`납입\s*방식\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`(월납|연납|일시납|분기납|반기납)`,
		),
		fallback: compile(
			`(월납|연납|일시납|분기납|반기납)`,
		),
	},
	domain.FieldPaymentPeriod: {
		label: "납입기간",
		rules: compile(
			`\*\*\s*납입\s*기간\s*\*\*\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`납입\s*기간\s*[:：]\s*\**\s*(`+nameClass+`)`,
			`([0-9]+\s*년\s*납)`,
		),
		fallback: compile(
			`납입\s*기간[^가-힣0-9]{0,6}(`+nameClass+`)`,
			`([0-9]+\s*년\s*납)`,
		),
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// fieldLabels maps fields to the Korean labels used when synthesizing
// "label: value" sections in fallback mode.
var fieldLabels = map[domain.FieldName]string{
	domain.FieldProductName:    "상품명",
	domain.FieldProductCode:    "상품코드",
	domain.FieldProductType:    "상품타입",
	domain.FieldCompanyName:    "회사",
	domain.FieldMonthlyPremium: "월보험료",
	domain.FieldPaymentMethod:  "납입방식",
	domain.FieldPaymentPeriod:  "납입기간",
}

// glyphBoundary is one tier-1 boundary rule: a leading marker glyph that,
// together with at least one co-occurring keyword, starts a new section.
type glyphBoundary struct {
	glyph    string
	keywords []string
	kind     domain.SectionKind
	keepLine bool // boundary line is retained as the section's first content line
}

// headingBoundary is one tier-2 boundary rule: a markdown heading ("#" or
// "##" prefix) whose text contains one keyword from each of two sets.
type headingBoundary struct {
	first    []string
	second   []string
	kind     domain.SectionKind
	keepLine bool
}

// Tier-1 table. Glyphs are stored without emoji variation selectors so a
// substring check matches both presentation forms.
var glyphBoundaries = []glyphBoundary{
	{glyph: "🏷", keywords: []string{"상품", "비교", "분석"}, kind: domain.SectionHeader, keepLine: true},
	{glyph: "📋", keywords: []string{"기본", "정보", "문서"}, kind: domain.SectionBasicInfo, keepLine: true},
	{glyph: "💰", keywords: []string{"보험료", "납입"}, kind: domain.SectionPremiumInfo, keepLine: true},
	{glyph: "🛡", keywords: []string{"보장"}, kind: domain.SectionCoverage, keepLine: true},
	{glyph: "⭐", keywords: []string{"우위", "장점", "경쟁"}, kind: domain.SectionAdvantages, keepLine: true},
	{glyph: "💎", keywords: []string{"해약", "환급"}, kind: domain.SectionRefund, keepLine: true},
	{glyph: "🎯", keywords: []string{"추천", "대상", "고객"}, kind: domain.SectionTarget, keepLine: true},
	{glyph: "📊", keywords: []string{"점수", "평가"}, kind: domain.SectionScore, keepLine: true},
}

// Tier-2 table. Checked only when no tier-1 rule matched.
var headingBoundaries = []headingBoundary{
	{first: []string{"상품"}, second: []string{"분석", "비교", "개요"}, kind: domain.SectionHeader, keepLine: true},
	{first: []string{"기본", "상품"}, second: []string{"정보", "개요"}, kind: domain.SectionBasicInfo, keepLine: true},
	{first: []string{"보험료"}, second: []string{"정보", "구조"}, kind: domain.SectionPremiumInfo, keepLine: true},
	{first: []string{"핵심", "주요", "기본"}, second: []string{"보장"}, kind: domain.SectionCoverage, keepLine: true},
	{first: []string{"경쟁", "비교"}, second: []string{"우위", "장점"}, kind: domain.SectionAdvantages, keepLine: true},
	{first: []string{"해약", "만기"}, second: []string{"환급"}, kind: domain.SectionRefund, keepLine: true},
	{first: []string{"추천"}, second: []string{"대상", "고객"}, kind: domain.SectionTarget, keepLine: true},
	{first: []string{"비교", "상품", "종합"}, second: []string{"점수"}, kind: domain.SectionScore, keepLine: true},
}
