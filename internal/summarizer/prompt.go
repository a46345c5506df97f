package summarizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// System prompts. Numeric accuracy warnings are part of the contract: the
// downstream extractor preserves amounts verbatim and must not be fed
// rounded values.
const (
	ProductSystemPrompt = "당신은 보험상품 비교 분석 전문가입니다. 상품의 핵심 경쟁력과 차별화 요소를 정확히 파악하여 비교에 최적화된 정보를 제공해주세요. 🚨 중요: 모든 금액과 숫자는 원본 문서의 정확한 값을 그대로 사용하고, 절대 반올림하거나 수정하지 마세요."

	ComparisonSystemPrompt = "당신은 보험상품 비교 분석 전문가입니다. 두 상품을 고객 관점에서 쉽게 이해할 수 있도록 체계적으로 비교 분석해주세요. 🚨 중요: 모든 금액과 숫자는 원본 문서의 정확한 값을 그대로 사용하고, 절대 반올림하거나 수정하지 마세요. 전문용어는 고객이 이해하기 쉽게 설명을 추가해주세요."
)

// productOutputFormat is the section skeleton the model is asked to fill in.
// The segmenter's boundary tables recognize exactly these headings.
const productOutputFormat = `# 🏷️ 상품 비교 분석: %s

## 📋 기본 정보
- **상품명**: [정확한 상품명]
- **상품코드**: [코드]
- **상품타입**: [카테고리]
- **회사**: [보험사명]

## 💰 보험료 정보 🚨 숫자 변경 절대 금지
- **월보험료**: [원본 문서의 정확한 금액 - 예: 92,540원]
- **납입방식**: [방식]
- **납입기간**: [기간]

## 🛡️ 핵심 보장
### 기본보장 (주계약)
- [주계약 내용 및 금액]

### 주요 특약 TOP 5
1. [특약명] - [보장금액] - [특징]

## ⭐ 경쟁 우위
- **독특한 보장**: [차별화 요소]
- **보험료 경쟁력**: [비용 대비 효과]

## 💎 해약/환급
- **환급방식**: [방식]
- **만기조건**: [조건]

## 🎯 추천 대상
- **주요 고객**: [타겟층]
- **추천 상황**: [언제 유리한지]

## 📊 비교 점수 (5점 만점)
- **보험료 경쟁력**: ⭐⭐⭐⭐⭐
- **보장 다양성**: ⭐⭐⭐⭐⭐
- **보장 충실도**: ⭐⭐⭐⭐⭐
- **해약 조건**: ⭐⭐⭐⭐⭐`

// BuildProductAnalysisPrompt renders the single-product analysis prompt.
func BuildProductAnalysisPrompt(productName, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "다음은 보험 상품 %q 문서에서 추출한 텍스트입니다.\n", productName)
	b.WriteString("아래 항목을 빠짐없이 분석해주세요:\n\n")
	b.WriteString("1. 기본 정보: 상품명, 상품 코드, 상품 타입, 보험 회사명\n")
	b.WriteString("2. 보험료 정보: 월 보험료, 납입 방식, 납입 기간 (모든 금액은 원본 그대로, 반올림 금지)\n")
	b.WriteString("3. 핵심 보장 내용: 주계약과 주요 특약 상위 5개\n")
	b.WriteString("4. 비교 우위 요소\n")
	b.WriteString("5. 해약/환급 정보\n")
	b.WriteString("6. 대상 고객\n\n")
	b.WriteString("결과 형식:\n")
	fmt.Fprintf(&b, productOutputFormat, productName)
	b.WriteString("\n\n추출된 텍스트:\n")
	b.WriteString(text)
	return b.String()
}

// BuildComparisonPrompt renders the two-product comparison prompt. The
// "## 📊 상품 B 분석" heading in the requested format doubles as the
// delimiter the splitter cuts on.
func BuildComparisonPrompt(nameA, textA, nameB, textB string) string {
	var b strings.Builder
	b.WriteString("다음은 두 보험 상품 문서에서 추출한 텍스트입니다.\n")
	b.WriteString("두 상품을 고객 관점에서 비교 분석해주세요. 모든 금액과 숫자는 원본 그대로 사용하세요.\n\n")
	b.WriteString("결과 형식:\n")
	b.WriteString("# 🏷️ 2개 상품 비교 분석\n\n")
	b.WriteString("## 📊 상품 A 분석\n")
	fmt.Fprintf(&b, "[%s에 대해 기본 정보, 보험료 정보, 핵심 보장, 경쟁 우위 순서로 분석]\n\n", nameA)
	b.WriteString("## 📊 상품 B 분석\n")
	fmt.Fprintf(&b, "[%s에 대해 같은 순서로 분석]\n\n", nameB)
	b.WriteString("## 🎯 상황별 추천 가이드\n")
	b.WriteString("[어떤 고객에게 어느 상품이 유리한지]\n\n")
	fmt.Fprintf(&b, "상품 A (%s) 텍스트:\n%s\n\n", nameA, textA)
	fmt.Fprintf(&b, "상품 B (%s) 텍스트:\n%s\n", nameB, textB)
	return b.String()
}

var (
	thousandRe       = regexp.MustCompile(`([0-9,]+)\s*천원`)
	tenThousandRe    = regexp.MustCompile(`([0-9,]+)\s*만원`)
	hundredMillionRe = regexp.MustCompile(`([0-9.]+)\s*억원`)
	premiumContextRe = regexp.MustCompile(`(월보험료|보험료|납입|보장금액|지급금액)[:：]\s*([0-9,]+)`)
)

// NormalizeCurrencyUnits rewrites 천원/만원/억원 amounts into plain 원 so
// amounts from different documents compare like for like. Bare numbers in a
// premium context get the 원 suffix. Unparseable amounts are left untouched.
func NormalizeCurrencyUnits(text string) string {
	text = thousandRe.ReplaceAllStringFunc(text, func(m string) string {
		return scaleAmount(m, thousandRe, 1_000)
	})
	text = tenThousandRe.ReplaceAllStringFunc(text, func(m string) string {
		return scaleAmount(m, tenThousandRe, 10_000)
	})
	text = hundredMillionRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := hundredMillionRe.FindStringSubmatch(m)
		f, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return formatWon(int64(f * 100_000_000))
	})
	return addWonInPremiumContext(text)
}

func scaleAmount(m string, re *regexp.Regexp, factor int64) string {
	sub := re.FindStringSubmatch(m)
	n, err := strconv.ParseInt(strings.ReplaceAll(sub[1], ",", ""), 10, 64)
	if err != nil {
		return m
	}
	return formatWon(n * factor)
}

// addWonInPremiumContext appends 원 to bare numbers following a premium
// label, unless a unit suffix already follows the number.
func addWonInPremiumContext(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range premiumContextRe.FindAllStringSubmatchIndex(text, -1) {
		end := loc[1]
		if hasUnitSuffix(text[end:]) {
			continue
		}
		b.WriteString(text[last:end])
		b.WriteString("원")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func hasUnitSuffix(rest string) bool {
	for _, unit := range []string{"원", "천", "만", "억"} {
		if strings.HasPrefix(rest, unit) {
			return true
		}
	}
	return false
}

func formatWon(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String() + "원"
}
