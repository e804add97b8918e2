package textextract

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/pagemeta/internal/gemini"
	"github.com/lehigh-university-libraries/pagemeta/internal/ollama"
	"github.com/lehigh-university-libraries/pagemeta/internal/openai"
	"github.com/lehigh-university-libraries/pagemeta/internal/providers"
)

// scanExtensions are the sibling image files probed, in order, when a PDF
// has no usable text layer. Digitization batches ship the page scan next
// to the PDF under the same basename.
var scanExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}

// Service extracts page text, using LLM vision OCR when the embedded text
// layer is not usable. This is faster and more reliable than traditional
// OCR for degraded newsprint scans.
type Service struct {
	provider providers.Provider
	model    string
}

// NewService creates a text extraction service on the named provider.
// An empty provider name falls back to the PAGEMETA_PROVIDER environment
// variable, then to ollama.
func NewService(providerName, model string) (*Service, error) {
	if providerName == "" {
		providerName = os.Getenv("PAGEMETA_PROVIDER")
		if providerName == "" {
			providerName = "ollama"
		}
	}
	if model == "" {
		model = defaultModel(providerName)
	}

	provider, err := resolveProvider(providerName)
	if err != nil {
		return nil, err
	}

	return &Service{provider: provider, model: model}, nil
}

// ExtractText returns the text of the PDF's first page, preferring the
// embedded text layer. When the layer is too thin the sibling page scan,
// if any, is run through vision OCR. usedOCR reports which path produced
// the text.
func (s *Service) ExtractText(ctx context.Context, pdfPath string) (text string, usedOCR bool, err error) {
	text, err = PageText(pdfPath)
	if err != nil {
		slog.Warn("Failed to read pdf text layer", "path", pdfPath, "err", err)
	}
	if text != "" {
		return text, false, nil
	}

	scanPath := findPageScan(pdfPath)
	if scanPath == "" {
		slog.Info("No text layer and no page scan available", "path", pdfPath)
		return "", false, nil
	}

	slog.Info("Falling back to OCR", "path", pdfPath, "scan", scanPath)
	text, err = s.ExtractTextFromImage(ctx, scanPath)
	if err != nil {
		return "", false, fmt.Errorf("ocr fallback failed: %w", err)
	}
	return text, true, nil
}

// ExtractTextFromImage extracts text from a page scan using LLM vision
// capabilities.
func (s *Service) ExtractTextFromImage(ctx context.Context, imagePath string) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image for OCR: %w", err)
	}

	text, err := s.provider.Complete(ctx, providers.Request{
		Model:       s.model,
		Temperature: 0.0, // Zero temperature for exact OCR
		Prompt:      buildOCRPrompt(),
		Images:      []string{base64.StdEncoding.EncodeToString(imageData)},
	})
	if err != nil {
		return "", err
	}

	slog.Info("Extracted OCR text", "image", imagePath, "length", len(text))
	return strings.TrimSpace(text), nil
}

func buildOCRPrompt() string {
	return `You are performing OCR (Optical Character Recognition) on a scanned periodical page image (a newspaper, magazine, or bulletin page, in English or Spanish).

Your task is to extract ALL visible text from the image exactly as it appears, preserving:
- Line breaks and formatting
- Capitalization
- Punctuation
- Special characters and accented letters
- Order of text elements, top to bottom

INSTRUCTIONS:
1. Read the image carefully from top to bottom
2. Transcribe every piece of visible text, including the masthead, dateline, and volume/issue markers
3. Preserve the original line breaks
4. Do not add any interpretation, commentary, or explanations
5. Do not skip any text, no matter how small or decorative
6. If text is partially obscured or unclear, transcribe what you can see and use [?] for illegible portions

OUTPUT FORMAT:
Provide ONLY the extracted text. Do not include phrases like "Here is the text:" or "The image contains:".
Start immediately with the transcribed text from the page.`
}

// findPageScan returns the path of a sibling image file sharing the PDF's
// basename, or empty when none exists.
func findPageScan(pdfPath string) string {
	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	for _, ext := range scanExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
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
