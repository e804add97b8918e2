// Package textextract acquires raw page text for the metadata engine,
// preferring a document's embedded text layer and falling back to
// LLM-vision OCR of a page scan when the layer is missing or too thin.
package textextract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minTextLayerChars is the threshold below which a first page is assumed
// to be a scan with no useful embedded text.
const minTextLayerChars = 80

// PageText returns the embedded text of the first page of the PDF at path.
// A page whose text layer is shorter than minTextLayerChars is treated as
// scanned and yields an empty string without error.
func PageText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	if reader.NumPage() < 1 {
		return "", fmt.Errorf("pdf has no pages")
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("first page is unreadable")
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to read text layer: %w", err)
	}

	text = strings.TrimSpace(text)
	if len(text) < minTextLayerChars {
		return "", nil
	}

	return text, nil
}
