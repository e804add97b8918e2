// Package dataset loads labeled page datasets for evaluation runs.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader reads labeled pages from a JSONL or Parquet file.
type Loader struct {
	datasetPath string
}

func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load reads every record in the dataset file.
func (l *Loader) Load() ([]LabeledPage, error) {
	return l.LoadSample(0)
}

// LoadSample reads up to limit records; limit <= 0 means no limit.
func (l *Loader) LoadSample(limit int) ([]LabeledPage, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet(limit)
	case ".jsonl", ".json":
		return l.loadJSONL(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func (l *Loader) loadJSONL(limit int) ([]LabeledPage, error) {
	slog.Debug("Opening JSONL dataset", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var pages []LabeledPage
	scanner := bufio.NewScanner(file)

	// Increase buffer size for pages with large OCR text
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		if limit > 0 && len(pages) >= limit {
			break
		}
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var page LabeledPage
		if err := json.Unmarshal(line, &page); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		pages = append(pages, page)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL dataset", "total_records", len(pages))

	return pages, nil
}

func (l *Loader) loadParquet(limit int) ([]LabeledPage, error) {
	slog.Debug("Opening Parquet dataset", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet dataset opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[LabeledPage](pf)
	defer reader.Close()

	var pages []LabeledPage
	rows := make([]LabeledPage, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			pages = append(pages, rows[:n]...)
			if limit > 0 && len(pages) >= limit {
				pages = pages[:limit]
				break
			}
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet dataset", "total_records", len(pages))

	return pages, nil
}
