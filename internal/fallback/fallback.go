// Package fallback asks a generative model for the metadata the heuristic
// engine could not extract with confidence. The engine never calls this
// package; the orchestrator decides when the extraction confidence is low
// enough to warrant it.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/pagemeta/internal/gemini"
	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
	"github.com/lehigh-university-libraries/pagemeta/internal/ollama"
	"github.com/lehigh-university-libraries/pagemeta/internal/openai"
	"github.com/lehigh-university-libraries/pagemeta/internal/providers"
	"golang.org/x/time/rate"
)

// SourceLLMFallback tags field values that were filled in by the
// generative model rather than the heuristic engine.
const SourceLLMFallback metadata.Source = "llm_fallback"

// maxPromptChars bounds how much page text is sent to the model.
const maxPromptChars = 8000

// Metadata is the generative model's answer for one page.
type Metadata struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	VolumeIssue string `json:"volume_issue"`
	Description string `json:"description"`
}

// Service calls an LLM provider for metadata and description fallback.
type Service struct {
	provider providers.Provider
	model    string
	limiter  *rate.Limiter
}

// NewService creates a fallback service on the named provider, throttled
// to requestsPerSecond across all callers.
func NewService(providerName, model string, requestsPerSecond float64) (*Service, error) {
	if providerName == "" {
		providerName = os.Getenv("PAGEMETA_PROVIDER")
		if providerName == "" {
			providerName = "ollama"
		}
	}
	if model == "" {
		model = defaultModel(providerName)
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	provider, err := resolveProvider(providerName)
	if err != nil {
		return nil, err
	}

	return &Service{
		provider: provider,
		model:    model,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// ExtractMetadata asks the model for title/date/volume-issue/description
// for the given page text.
func (s *Service) ExtractMetadata(ctx context.Context, text, filename string) (Metadata, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Metadata{}, err
	}

	response, err := s.provider.Complete(ctx, providers.Request{
		Model:       s.model,
		Temperature: 0.1, // Low temperature for consistent, factual output
		Prompt:      buildMetadataPrompt(truncate(text, maxPromptChars)),
		JSON:        true,
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("fallback extraction failed: %w", err)
	}

	parsed, err := parseMetadataResponse(response)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to parse fallback response for %s: %w", filename, err)
	}

	slog.Info("Extracted fallback metadata", "document", filename, "model", s.model)
	return parsed, nil
}

// Merge fills the fields the heuristic engine left empty, never
// overwriting a non-empty heuristic value.
func Merge(result *metadata.ExtractionResult, m Metadata) {
	if result.Title.Value == "" && m.Title != "" {
		result.Title = metadata.Field{Value: m.Title, Source: SourceLLMFallback}
	}
	if result.Date.Value == "" && m.Date != "" {
		result.Date = metadata.Field{Value: m.Date, Source: SourceLLMFallback}
	}
	if result.VolumeIssue.Value == "" && m.VolumeIssue != "" {
		result.VolumeIssue = metadata.Field{Value: m.VolumeIssue, Source: SourceLLMFallback}
	}
}

func buildMetadataPrompt(text string) string {
	return fmt.Sprintf(`You are an expert bibliographic metadata cataloger for a periodicals digitization project. Extract structured metadata from the text of a scanned periodical page (newspaper, magazine, or bulletin; English or Spanish).

INSTRUCTIONS:
1. Carefully analyze ALL information in the page text
2. Extract the following fields:
   - title: The page's main headline or the document title
   - date: Publication date in YYYY/MM/DD format, using NA for unknown components (e.g. "1984/10/NA")
   - volume_issue: The serial numbering exactly as printed (e.g. "Vol. 3, No. 2"), or ""
   - description: A 2-3 sentence description of the page contents
3. For missing fields, use an empty string ""
4. Do not invent or infer information that is not present

OUTPUT FORMAT:
Respond with ONLY a JSON object:

{
  "title": "...",
  "date": "...",
  "volume_issue": "...",
  "description": "..."
}

Page text:

%s`, text)
}

// parseMetadataResponse parses the model's JSON answer, tolerating
// markdown code fences around it.
func parseMetadataResponse(response string) (Metadata, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var m Metadata
	if err := json.Unmarshal([]byte(response), &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

// resolveProvider maps a provider name to its implementation.
func resolveProvider(name string) (providers.Provider, error) {
	switch name {
	case "ollama":
		return ollama.New(), nil
	case "openai":
		return openai.New(), nil
	case "gemini":
		return gemini.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// defaultModel returns the model used when none is configured.
func defaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}
