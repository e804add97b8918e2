package metrics

import (
	"fmt"
	"strings"
	"time"
)

// EvaluationResult holds the outcome for a single labeled page.
type EvaluationResult struct {
	ID             string
	ExpectedTitle  string
	ActualTitle    string
	Comparison     *PageComparison
	ProcessingTime time.Duration
	Error          string // If extraction failed
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	// Field-level statistics
	TitleAccuracy       FieldStats
	DateAccuracy        FieldStats
	VolumeIssueAccuracy FieldStats

	// Overall
	OverallAccuracy float64

	// Timing
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	// Detailed results
	Results []EvaluationResult

	// Metadata
	EvaluationDate time.Time
	DatasetPath    string
	SampleSize     int
}

// FieldStats contains statistics for a single metadata field
type FieldStats struct {
	ExactMatches  int
	FuzzyMatches  int
	NoMatches     int
	MissingFields int
	AverageScore  float64
	Scores        []float64
}

// AggregateEvaluationResults aggregates per-page results for a run.
func AggregateEvaluationResults(results []EvaluationResult, datasetPath string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		EvaluationDate: time.Now(),
		DatasetPath:    datasetPath,
		SampleSize:     len(results),
	}

	agg.TitleAccuracy = FieldStats{Scores: []float64{}}
	agg.DateAccuracy = FieldStats{Scores: []float64{}}
	agg.VolumeIssueAccuracy = FieldStats{Scores: []float64{}}

	totalOverallScore := 0.0
	var totalDuration time.Duration
	var successDuration time.Duration

	for _, result := range results {
		totalDuration += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += result.ProcessingTime

		if result.Comparison == nil {
			continue
		}

		aggregateFieldStats(&agg.TitleAccuracy, result.Comparison.TitleMatch)
		aggregateFieldStats(&agg.DateAccuracy, result.Comparison.DateMatch)
		aggregateFieldStats(&agg.VolumeIssueAccuracy, result.Comparison.VolumeIssueMatch)

		totalOverallScore += result.Comparison.OverallScore
	}

	if agg.SuccessCount > 0 {
		agg.TitleAccuracy.AverageScore = calculateAverage(agg.TitleAccuracy.Scores)
		agg.DateAccuracy.AverageScore = calculateAverage(agg.DateAccuracy.Scores)
		agg.VolumeIssueAccuracy.AverageScore = calculateAverage(agg.VolumeIssueAccuracy.Scores)
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	agg.TotalProcessingTime = totalDuration

	return agg
}

// aggregateFieldStats updates field statistics
func aggregateFieldStats(stats *FieldStats, match FieldMatch) {
	stats.Scores = append(stats.Scores, match.Score)

	switch match.Method {
	case "exact":
		stats.ExactMatches++
	case "fuzzy_high", "fuzzy_medium", "substring":
		stats.FuzzyMatches++
	case "no_match":
		stats.NoMatches++
	case "actual_missing", "expected_missing", "both_missing":
		stats.MissingFields++
	}
}

// percentage returns count as a percentage of total, 0 when total is zero.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total) * 100
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

// PrintSummary prints a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("PAGEMETA EVALUATION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Dataset: %s\n", a.DatasetPath)
	fmt.Printf("Sample Size: %d pages\n", a.SampleSize)
	fmt.Println()

	fmt.Println("PROCESSING STATISTICS")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Total Pages: %d\n", a.TotalRecords)
	fmt.Printf("Successful: %d (%.1f%%)\n", a.SuccessCount, percentage(a.SuccessCount, a.TotalRecords))
	fmt.Printf("Failed: %d (%.1f%%)\n", a.FailureCount, percentage(a.FailureCount, a.TotalRecords))
	fmt.Printf("Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Printf("Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Println()

	fmt.Println("FIELD-LEVEL ACCURACY")
	fmt.Println(strings.Repeat("-", 70))
	printFieldStats("Title", a.TitleAccuracy)
	printFieldStats("Date", a.DateAccuracy)
	printFieldStats("Volume/Issue", a.VolumeIssueAccuracy)
	fmt.Println()

	fmt.Println("OVERALL SCORE")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Println(strings.Repeat("=", 70))
}

// printFieldStats prints statistics for a single field
func printFieldStats(fieldName string, stats FieldStats) {
	fmt.Printf("\n%s:\n", fieldName)
	fmt.Printf("  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
	fmt.Printf("  Exact Matches: %d\n", stats.ExactMatches)
	fmt.Printf("  Fuzzy Matches: %d\n", stats.FuzzyMatches)
	fmt.Printf("  No Matches: %d\n", stats.NoMatches)
	fmt.Printf("  Missing Fields: %d\n", stats.MissingFields)
}
