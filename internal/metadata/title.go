package metadata

import (
	"unicode"
)

const (
	titleScanLines    = 15
	minTitleLength    = 10
	maxTitleLength    = 200
	titleCutoff       = 0.6
	firstLineFallback = 0.3
)

// TitleCandidate is a scored line from the top of the page.
type TitleCandidate struct {
	Text       string
	Confidence float64
	Position   int
}

// scoreTitleLine scores a single line as a title candidate. The confidence
// is clamped to [0,1] after every adjustment step; the ordering of boosts
// and the intermediate clamps are part of the contract, since the position
// boost can saturate before the exclusion penalty applies.
func scoreTitleLine(line string, index int) (TitleCandidate, bool) {
	length := len([]rune(line))
	if length < minTitleLength || length > maxTitleLength {
		return TitleCandidate{}, false
	}

	confidence := 0.5

	// Earlier lines score higher, decaying to nothing at line 15.
	confidence = clamp01(confidence + 0.05*float64(titleScanLines-index))

	if looksLikeTitleCase(line) {
		confidence = clamp01(confidence + 0.2)
	}

	if length >= 20 && length <= 100 {
		confidence = clamp01(confidence + 0.1)
	}

	if matchesVolumeIssue(line) || mastheadPattern.MatchString(line) {
		confidence = clamp01(confidence - 0.3)
	}

	if confidence < titleCutoff {
		return TitleCandidate{}, false
	}

	return TitleCandidate{Text: line, Confidence: confidence, Position: index}, true
}

// selectTitle scans the first 15 non-blank lines and returns the
// best-scoring candidate, ties broken by the earliest line. When no line
// survives the cutoff the first non-blank line is returned at fallback
// confidence; an empty page yields a None-sourced field.
func selectTitle(lines []string) Field {
	limit := len(lines)
	if limit > titleScanLines {
		limit = titleScanLines
	}

	var best TitleCandidate
	found := false
	for i := 0; i < limit; i++ {
		candidate, ok := scoreTitleLine(lines[i], i)
		if !ok {
			continue
		}
		if !found || candidate.Confidence > best.Confidence {
			best = candidate
			found = true
		}
	}

	if found {
		return Field{Value: best.Text, Confidence: best.Confidence, Source: SourceHeuristic}
	}

	if len(lines) > 0 {
		return Field{Value: lines[0], Confidence: firstLineFallback, Source: SourceFirstLineFallback}
	}

	return Field{Source: SourceNone}
}

// looksLikeTitleCase reports whether the line is title-cased or at least
// mixed-case starting with a capital. All-caps and all-lowercase lines get
// no typographic boost.
func looksLikeTitleCase(line string) bool {
	runes := []rune(line)

	if unicode.IsUpper(runes[0]) {
		for _, r := range runes[1:] {
			if unicode.IsLower(r) {
				return true
			}
		}
	}

	return isTitleCased(runes)
}

// isTitleCased mirrors Python's str.istitle: every cased run starts with
// exactly one uppercase letter followed by lowercase ones, and the string
// contains at least one cased character.
func isTitleCased(runes []rune) bool {
	cased := false
	prevCased := false
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			cased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// matchesVolumeIssue reports whether any volume/issue pattern matches the
// line. Used only as a title exclusion signal.
func matchesVolumeIssue(line string) bool {
	for _, pattern := range volumeIssuePatterns {
		if pattern.Regexp.MatchString(line) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
