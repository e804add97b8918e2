package fallback

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// minDescriptionWords is the point below which the heuristic summary is
// considered too thin and the model is asked instead.
const minDescriptionWords = 20

var (
	introPattern      = regexp.MustCompile(`(?is)(?:introducci[oó]n|introduction|resumen|summary)[\s:]+(.+?)(?:\n\n[A-Z]|$)`)
	conclusionPattern = regexp.MustCompile(`(?is)(?:conclusiones|conclusion|recomendaciones|recommendations)[\s:]+(.+?)(?:\n\n[A-Z]|$)`)
)

// Describe produces a short description of the page, preferring key
// sections found heuristically and falling back to the model when the
// heuristic yield is too thin.
func (s *Service) Describe(ctx context.Context, text, filename string) string {
	description := extractKeySections(text)
	if len(strings.Fields(description)) >= minDescriptionWords {
		return description
	}

	m, err := s.ExtractMetadata(ctx, text, filename)
	if err != nil {
		slog.Warn("Description fallback failed", "document", filename, "err", err)
		return description
	}
	if m.Description == "" {
		return description
	}
	return m.Description
}

// extractKeySections pulls introduction/conclusion sections out of the
// text, or the first three paragraphs when no section headers are found.
func extractKeySections(text string) string {
	var sections []string

	if m := introPattern.FindStringSubmatch(text); m != nil {
		sections = append(sections, strings.TrimSpace(m[1]))
	}
	if m := conclusionPattern.FindStringSubmatch(text); m != nil {
		sections = append(sections, strings.TrimSpace(m[1]))
	}

	if len(sections) == 0 {
		for _, paragraph := range strings.Split(text, "\n\n") {
			paragraph = strings.TrimSpace(paragraph)
			if paragraph == "" {
				continue
			}
			sections = append(sections, paragraph)
			if len(sections) == 3 {
				break
			}
		}
	}

	return strings.Join(sections, " ")
}
