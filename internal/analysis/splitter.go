package analysis

import (
	"strings"

	"inscan/internal/domain"
)

// Delimiters tried in order when splitting a comparison text into the two
// product halves. The compound form is what the comparison prompt asks the
// model to emit; the shorter forms cover partially mangled output.
const (
	delimCompound = "## 📊 상품 B 분석"
	delimShort    = "상품 B 분석"
	delimHeader   = "## 상품 B"
)

// productBMarkers are phrases that, anywhere in a line, indicate the text
// has switched to the second product. Used by the line-classifier strategy
// when no delimiter survived in the output.
var productBMarkers = []string{
	"상품 B",
	"상품B",
	"B 상품",
	"두 번째 상품",
}

// Split divides a comparison analysis into product A and product B texts.
// Strategies cascade from the exact delimiter down to a line classifier;
// the last strategy always succeeds, possibly with an empty B half.
func Split(rawText string) (textA, textB string, strategy domain.SplitStrategy) {
	if a, b, ok := splitOnDelimiter(rawText, delimCompound); ok {
		return a, b, domain.SplitCompoundDelimiter
	}
	if a, b, ok := splitOnDelimiter(rawText, delimShort); ok {
		return a, b, domain.SplitShortDelimiter
	}
	if a, b, ok := splitOnDelimiter(rawText, delimHeader); ok {
		return a, b, domain.SplitHeaderLiteral
	}
	a, b := splitByLineClassifier(rawText)
	return a, b, domain.SplitLineClassifier
}

// splitOnDelimiter cuts at the first occurrence of delim. The delimiter
// line is kept at the head of the B half so its heading still segments.
func splitOnDelimiter(rawText, delim string) (string, string, bool) {
	idx := strings.Index(rawText, delim)
	if idx < 0 {
		return "", "", false
	}
	return rawText[:idx], rawText[idx:], true
}

// splitByLineClassifier walks the text line by line and flips to the B half
// at the first line mentioning product B. Everything from that line on,
// including the triggering line, belongs to B. When B does not open with a
// recognizable heading, a synthetic one is prepended so segmentation has a
// boundary to anchor on.
func splitByLineClassifier(rawText string) (string, string) {
	lines := strings.Split(rawText, "\n")
	flip := -1
	for i, line := range lines {
		if lineMentionsProductB(line) {
			flip = i
			break
		}
	}
	if flip < 0 {
		return rawText, ""
	}

	textA := strings.Join(lines[:flip], "\n")
	textB := strings.Join(lines[flip:], "\n")
	if _, _, ok := classifyBoundary(lines[flip]); !ok {
		textB = delimCompound + "\n" + textB
	}
	return textA, textB
}

func lineMentionsProductB(line string) bool {
	for _, marker := range productBMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
