// Package metadata infers bibliographic metadata (title, publication date,
// volume/issue) from the noisy text of a single scanned periodical page.
// Every field carries a confidence score and a provenance tag so callers
// can decide when a generative-model fallback is worth invoking; the
// engine itself is a pure function and never calls out.
package metadata

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Source identifies which extraction strategy produced a field value.
type Source string

const (
	SourceNone              Source = "none"
	SourcePatternMatch      Source = "pattern_match"
	SourceHeuristic         Source = "heuristic"
	SourceFirstLineFallback Source = "first_line_fallback"
)

// Field is an extracted value tagged with confidence and provenance.
// A None-sourced field always has an empty value and zero confidence.
type Field struct {
	Value      string  `json:"value" yaml:"value"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Source     Source  `json:"source" yaml:"source"`
}

// ExtractionResult is the full structured output for one page of text.
// It is constructed fresh per call and never shared.
type ExtractionResult struct {
	Title                Field   `json:"title" yaml:"title"`
	Date                 Field   `json:"date" yaml:"date"`
	VolumeIssue          Field   `json:"volume_issue" yaml:"volume_issue"`
	DocumentName         string  `json:"document_name" yaml:"document_name"`
	Language             string  `json:"language" yaml:"language"`
	ExtractionConfidence float64 `json:"extraction_confidence" yaml:"extraction_confidence"`
	Error                string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Extract infers title, date and volume/issue metadata from raw page text.
// filename is echoed back unmodified as DocumentName. language is "en",
// "es" or "any"; unrecognized hints are widened to "any". Extract never
// fails: empty or unparseable input degrades to empty fields with zero
// confidence, and any internal fault is logged and reported through the
// Error field on the partial result.
func Extract(text, filename, language string) (result ExtractionResult) {
	language = normalizeLanguage(language)

	result = ExtractionResult{
		Title:        Field{Source: SourceNone},
		Date:         Field{Source: SourceNone},
		VolumeIssue:  Field{Source: SourceNone},
		DocumentName: filename,
		Language:     language,
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Metadata extraction fault", "document", filename, "fault", r)
			result.Error = fmt.Sprintf("extraction fault: %v", r)
		}
	}()

	lines := normalizeLines(text)
	if len(lines) == 0 {
		return result
	}

	joined := strings.Join(lines, " ")

	if date, ok := resolveDate(joined, lines, language); ok {
		result.Date = Field{
			Value:      date.Format(),
			Confidence: date.Confidence,
			Source:     SourcePatternMatch,
		}
	}

	if vi, ok := extractVolumeIssue(joined); ok {
		result.VolumeIssue = vi
	}

	result.Title = selectTitle(lines)

	// Volume/issue is down-weighted: its absence is common and should not
	// dominate the aggregate.
	result.ExtractionConfidence = (result.Title.Confidence +
		result.Date.Confidence +
		result.VolumeIssue.Confidence*0.5) / 3

	return result
}

// extractVolumeIssue returns the first pattern match in registry order.
// This is deliberately not the date resolver's best-match policy.
func extractVolumeIssue(joined string) (Field, bool) {
	for _, pattern := range volumeIssuePatterns {
		if m := pattern.Regexp.FindString(joined); m != "" {
			return Field{Value: m, Confidence: pattern.Confidence, Source: SourcePatternMatch}, true
		}
	}
	return Field{}, false
}

// normalizeLines applies NFKC composition, replaces OCR control-character
// noise with spaces, and splits the text into trimmed non-blank lines.
// It never fails; blank input yields an empty slice.
func normalizeLines(text string) []string {
	text = norm.NFKC.String(text)
	text = strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == unicode.ReplacementChar || unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func normalizeLanguage(language string) string {
	switch language {
	case "en", "es", "any":
		return language
	default:
		return "any"
	}
}
