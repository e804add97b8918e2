// Package batch orchestrates the processing pipeline over one or many
// documents: text extraction, heuristic metadata inference, and the
// optional generative fallback for low-confidence results.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/fallback"
	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
	"github.com/lehigh-university-libraries/pagemeta/internal/models"
	"github.com/lehigh-university-libraries/pagemeta/internal/results"
	"github.com/lehigh-university-libraries/pagemeta/internal/textextract"
)

// Options configures a batch run.
type Options struct {
	Language    string
	Workers     int
	UseFallback bool
	Provider    string
	Model       string
	Threshold   float64
	RateLimit   float64
	Describe    bool
}

// Processor runs the extraction pipeline over documents.
type Processor struct {
	opts     Options
	ocr      *textextract.Service
	fallback *fallback.Service
}

// NewProcessor builds a processor, creating the OCR and fallback
// services only when the options ask for them.
func NewProcessor(opts Options) (*Processor, error) {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 0.5
	}

	p := &Processor{opts: opts}

	ocr, err := textextract.NewService(opts.Provider, opts.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR service: %w", err)
	}
	p.ocr = ocr

	if opts.UseFallback || opts.Describe {
		fb, err := fallback.NewService(opts.Provider, opts.Model, opts.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback service: %w", err)
		}
		p.fallback = fb
	}

	return p, nil
}

// ProcessFile runs the full pipeline on a single document.
func (p *Processor) ProcessFile(ctx context.Context, path string) *models.ProcessedDocument {
	doc := &models.ProcessedDocument{ProcessedAt: time.Now()}
	filename := filepath.Base(path)

	text, usedOCR, err := p.ocr.ExtractText(ctx, path)
	if err != nil {
		doc.Error = fmt.Sprintf("text extraction failed: %v", err)
		doc.Metadata.DocumentName = filename
		slog.Error("Failed to extract text", "document", filename, "err", err)
		return doc
	}
	doc.UsedOCR = usedOCR

	doc.Metadata = metadata.Extract(text, filename, p.opts.Language)
	if doc.Metadata.Error != "" {
		doc.Error = doc.Metadata.Error
		return doc
	}

	if p.fallback != nil && p.opts.UseFallback && p.needsFallback(&doc.Metadata) {
		m, err := p.fallback.ExtractMetadata(ctx, text, filename)
		if err != nil {
			slog.Warn("Fallback extraction failed", "document", filename, "err", err)
		} else {
			fallback.Merge(&doc.Metadata, m)
			doc.UsedFallback = true
			if p.opts.Describe && doc.Description == "" {
				doc.Description = m.Description
			}
		}
	}

	if p.fallback != nil && p.opts.Describe && doc.Description == "" {
		doc.Description = p.fallback.Describe(ctx, text, filename)
	}

	doc.Success = true
	return doc
}

// needsFallback reports whether the heuristic result is weak enough to
// warrant a model call.
func (p *Processor) needsFallback(result *metadata.ExtractionResult) bool {
	if result.Title.Value == "" || result.Date.Value == "" {
		return true
	}
	return result.ExtractionConfidence < p.opts.Threshold
}

// ProcessDirectory processes every supported document under dir with a
// bounded worker pool and appends each record to the writer as it
// completes. Returns all records in input order.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string, writer *results.Writer) ([]*models.ProcessedDocument, error) {
	paths, err := collectDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents found in %s", dir)
	}

	slog.Info("Processing documents", "count", len(paths), "workers", p.opts.Workers)

	type indexed struct {
		idx int
		doc *models.ProcessedDocument
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.opts.Workers)
	docsChan := make(chan indexed, len(paths))

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing document", "document", filepath.Base(path), "progress", fmt.Sprintf("%d/%d", idx+1, len(paths)))

			doc := p.ProcessFile(ctx, path)
			if writer != nil {
				if err := writer.Append(doc); err != nil {
					slog.Error("Failed to write record", "document", filepath.Base(path), "err", err)
				}
			}
			docsChan <- indexed{idx: idx, doc: doc}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(docsChan)
	}()

	docs := make([]*models.ProcessedDocument, len(paths))
	for item := range docsChan {
		docs[item.idx] = item.doc
	}

	return docs, nil
}

// collectDocuments finds the PDF files under dir, sorted by name.
func collectDocuments(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
