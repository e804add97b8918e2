// Package evalcmd runs the heuristic engine over a labeled dataset and
// reports per-field accuracy.
package evalcmd

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/eval/dataset"
	"github.com/lehigh-university-libraries/pagemeta/internal/eval/metrics"
	"github.com/lehigh-university-libraries/pagemeta/internal/eval/results"
	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
)

// Run evaluates the heuristic engine against a labeled dataset.
func Run(datasetPath, language string, sampleSize, concurrency int) error {
	slog.Info("Starting evaluation run", "dataset", datasetPath, "language", language)

	slog.Info("Loading dataset...")
	loader := dataset.NewLoader(datasetPath)

	var pages []dataset.LabeledPage
	var err error
	if sampleSize > 0 {
		pages, err = loader.LoadSample(sampleSize)
	} else {
		pages, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Info("Dataset loaded", "pages", len(pages))

	if concurrency <= 0 {
		concurrency = 4
	}

	slog.Info("Processing pages", "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.EvaluationResult, len(pages))

	for i, page := range pages {
		wg.Add(1)
		go func(idx int, page dataset.LabeledPage) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Evaluating page", "id", page.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(pages)))

			resultsChan <- evaluatePage(page, language)
		}(i, page)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	evalResults := make([]metrics.EvaluationResult, 0, len(pages))
	for result := range resultsChan {
		evalResults = append(evalResults, result)
	}

	slog.Info("Calculating summary statistics...")
	aggregate := metrics.AggregateEvaluationResults(evalResults, datasetPath)
	aggregate.PrintSummary()

	if err := results.SaveToYAML(datasetPath, language, len(pages), evalResults); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	return nil
}

func evaluatePage(page dataset.LabeledPage, language string) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ID:            page.ID,
		ExpectedTitle: page.ExpectedTitle,
	}

	if page.Language != "" {
		language = page.Language
	}

	start := time.Now()
	extraction := metadata.Extract(page.Text, page.ID, language)
	result.ProcessingTime = time.Since(start)

	if extraction.Error != "" {
		result.Error = extraction.Error
		return result
	}

	result.ActualTitle = extraction.Title.Value
	result.Comparison = metrics.ComparePageFields(
		page.ExpectedTitle, extraction.Title.Value,
		page.ExpectedDate, extraction.Date.Value,
		page.ExpectedVolumeIssue, extraction.VolumeIssue.Value,
	)

	return result
}
