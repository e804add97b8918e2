package providers

import (
	"context"
)

// Request represents a single completion request to an LLM provider
type Request struct {
	Model       string
	Temperature float64
	Prompt      string
	// Images holds base64-encoded page renders for vision OCR requests.
	// Providers without vision support must reject non-empty values.
	Images []string
	// JSON requests a JSON-formatted response where the provider supports it.
	JSON bool
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
