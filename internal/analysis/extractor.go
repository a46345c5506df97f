package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"inscan/internal/domain"
)

// Extract applies the pattern library rules for field against textSpan and
// returns the first successful match. A miss is a normal outcome: the
// returned field has Found=false and is not an error.
func Extract(field domain.FieldName, textSpan string) domain.ExtractedField {
	fp, ok := fieldPatterns[field]
	if !ok {
		return domain.ExtractedField{Name: field}
	}
	if f, matched := runRules(field, fp.rules, "rule", textSpan); matched {
		return f
	}
	if value, matched := labelScan(fp.label, textSpan); matched {
		return finishField(field, value, "labelscan")
	}
	return domain.ExtractedField{Name: field}
}

// ExtractFallback applies the broader whole-document rule set, used when
// segmentation failed and fields must be recovered from unstructured text.
func ExtractFallback(field domain.FieldName, textSpan string) domain.ExtractedField {
	fp, ok := fieldPatterns[field]
	if !ok {
		return domain.ExtractedField{Name: field}
	}
	if f, matched := runRules(field, fp.rules, "rule", textSpan); matched {
		return f
	}
	if f, matched := runRules(field, fp.fallback, "fallback", textSpan); matched {
		return f
	}
	if value, matched := labelScan(fp.label, textSpan); matched {
		return finishField(field, value, "labelscan")
	}
	return domain.ExtractedField{Name: field}
}

// runRules evaluates an ordered rule list against the span with newlines
// flattened to spaces, so a label and its value may sit on different lines.
func runRules(field domain.FieldName, rules []*regexp.Regexp, tier, textSpan string) (domain.ExtractedField, bool) {
	normalized := strings.ReplaceAll(textSpan, "\n", " ")
	for i, re := range rules {
		m := re.FindStringSubmatch(normalized)
		if len(m) < 2 {
			continue
		}
		value := strings.TrimSpace(stripEmphasis(m[1]))
		if value == "" {
			continue
		}
		return finishField(field, value, fmt.Sprintf("%s:%d", tier, i)), true
	}
	return domain.ExtractedField{Name: field}, false
}

// labelScan is the secondary pass: a line-by-line search for the canonical
// label followed by a separator (colon, fullwidth colon), tolerating a
// leading list dash before the label.
func labelScan(label, textSpan string) (string, bool) {
	for _, line := range strings.Split(textSpan, "\n") {
		clean := strings.TrimSpace(line)
		clean = strings.TrimPrefix(clean, "-")
		clean = strings.TrimPrefix(clean, "•")
		clean = stripEmphasis(strings.TrimSpace(clean))

		idx := strings.Index(clean, label)
		if idx < 0 {
			continue
		}
		rest := clean[idx+len(label):]
		sep := -1
		sepLen := 0
		for _, s := range []string{":", "："} {
			if i := strings.Index(rest, s); i >= 0 && (sep < 0 || i < sep) {
				sep, sepLen = i, len(s)
			}
		}
		if sep < 0 {
			continue
		}
		value := strings.TrimSpace(rest[sep+sepLen:])
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// finishField trims the raw capture and applies currency normalization for
// the monthly premium field.
func finishField(field domain.FieldName, value, provenance string) domain.ExtractedField {
	f := domain.ExtractedField{
		Name:       field,
		Value:      value,
		Found:      true,
		Provenance: provenance,
	}
	if field == domain.FieldMonthlyPremium {
		f.Value, f.Normalized = NormalizeMonthlyPremium(value)
	}
	return f
}

// stripEmphasis removes literal markdown bold/italic markers.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return s
}

// NormalizeMonthlyPremium normalizes a captured premium amount. Values that
// already carry a currency suffix or thousands separator are preserved
// verbatim (the model's own formatting wins, to avoid introducing rounding
// or grouping errors). A bare digit string is grouped by thousands and given
// the 원 suffix. Anything unparseable is returned unchanged with
// normalized=false.
func NormalizeMonthlyPremium(value string) (string, bool) {
	v := strings.TrimSpace(stripEmphasis(value))
	if strings.Contains(v, "원") || strings.Contains(v, ",") {
		return v, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return v, false
	}
	return groupThousands(n) + "원", true
}

// groupThousands renders n with comma separators every three digits.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
