package analysis

import (
	"strings"

	"inscan/internal/domain"
)

// classifyBoundary reports whether a line starts a new section, trying the
// heuristic tiers in fixed order: symbolic markers first, then markdown
// heading syntax. Returns the section kind and whether the boundary line is
// kept as content.
func classifyBoundary(line string) (domain.SectionKind, bool, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false, false
	}

	// Tier 1: marker glyph plus a co-occurring keyword.
	for _, b := range glyphBoundaries {
		if !strings.Contains(trimmed, b.glyph) {
			continue
		}
		for _, kw := range b.keywords {
			if strings.Contains(trimmed, kw) {
				return b.kind, b.keepLine, true
			}
		}
	}

	// Tier 2: "#" or "##" heading with a keyword pair.
	if heading, ok := headingText(trimmed); ok {
		for _, b := range headingBoundaries {
			if containsAny(heading, b.first) && containsAny(heading, b.second) {
				return b.kind, b.keepLine, true
			}
		}
	}

	return "", false, false
}

// headingText strips a leading "#" or "##" marker and returns the heading
// body. Deeper heading levels are treated as content, not boundaries.
func headingText(line string) (string, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	body := strings.TrimPrefix(line, "#")
	body = strings.TrimPrefix(body, "#")
	if strings.HasPrefix(body, "#") {
		return "", false
	}
	return strings.TrimSpace(body), true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Segment scans rawText line by line and groups content into named sections.
// The scan keeps a local (kind, buffer) accumulator, so it is reentrant and
// free of side effects. Lines before the first recognized boundary have no
// kind and are dropped. When a kind recurs, the later flush overwrites the
// earlier section (last-write-wins; well-formed documents use each kind once).
func Segment(rawText string) []domain.Section {
	var (
		out         []domain.Section
		currentKind domain.SectionKind
		buffer      []string
	)

	flush := func() {
		defer func() { buffer = nil }()
		if currentKind == "" || len(buffer) == 0 {
			return
		}
		text := strings.Join(buffer, "\n")
		if strings.TrimSpace(text) == "" {
			return
		}
		sec := domain.Section{
			Kind:  currentKind,
			Lines: append([]string(nil), buffer...),
			Text:  text,
		}
		for i := range out {
			if out[i].Kind == currentKind {
				out[i] = sec
				return
			}
		}
		out = append(out, sec)
	}

	for _, line := range strings.Split(rawText, "\n") {
		kind, keepLine, isBoundary := classifyBoundary(line)
		if !isBoundary {
			buffer = append(buffer, line)
			continue
		}
		flush()
		currentKind = kind
		if keepLine {
			buffer = []string{line}
		}
	}
	flush()

	return out
}

// SegmentationFailed reports whether the segmenter output is unusable: no
// sections at all, or neither basic_info nor premium_info present. Callers
// must fall back to whole-document extraction in that case.
func SegmentationFailed(sections []domain.Section) bool {
	if len(sections) == 0 {
		return true
	}
	for _, s := range sections {
		if s.Kind == domain.SectionBasicInfo || s.Kind == domain.SectionPremiumInfo {
			return false
		}
	}
	return true
}
