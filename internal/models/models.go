package models

import (
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
)

// ProcessedDocument is the per-document record produced by the batch
// pipeline: the heuristic extraction result plus processing provenance.
type ProcessedDocument struct {
	Metadata     metadata.ExtractionResult `json:"metadata" yaml:"metadata"`
	Description  string                    `json:"description,omitempty" yaml:"description,omitempty"`
	UsedOCR      bool                      `json:"used_ocr" yaml:"used_ocr"`
	UsedFallback bool                      `json:"used_fallback" yaml:"used_fallback"`
	Success      bool                      `json:"success" yaml:"success"`
	Error        string                    `json:"error,omitempty" yaml:"error,omitempty"`
	ProcessedAt  time.Time                 `json:"processed_at" yaml:"processed_at"`
}
