package metrics

import (
	"math"
	"testing"
	"time"
)

func TestAggregateEvaluationResults(t *testing.T) {
	results := []EvaluationResult{
		{
			ID: "p1",
			Comparison: &PageComparison{
				TitleMatch:       FieldMatch{Score: 1.0, Method: "exact"},
				DateMatch:        FieldMatch{Score: 1.0, Method: "exact"},
				VolumeIssueMatch: FieldMatch{Score: 0.0, Method: "actual_missing"},
				OverallScore:     0.8,
			},
			ProcessingTime: 10 * time.Millisecond,
		},
		{
			ID: "p2",
			Comparison: &PageComparison{
				TitleMatch:       FieldMatch{Score: 0.8, Method: "substring"},
				DateMatch:        FieldMatch{Score: 0.0, Method: "no_match"},
				VolumeIssueMatch: FieldMatch{Score: 1.0, Method: "exact"},
				OverallScore:     0.52,
			},
			ProcessingTime: 20 * time.Millisecond,
		},
		{
			ID:             "p3",
			Error:          "empty page text",
			ProcessingTime: 1 * time.Millisecond,
		},
	}

	agg := AggregateEvaluationResults(results, "pages.jsonl")

	if agg.TotalRecords != 3 || agg.SuccessCount != 2 || agg.FailureCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", agg.TotalRecords, agg.SuccessCount, agg.FailureCount)
	}

	if agg.TitleAccuracy.ExactMatches != 1 || agg.TitleAccuracy.FuzzyMatches != 1 {
		t.Errorf("title stats = %+v", agg.TitleAccuracy)
	}
	if agg.DateAccuracy.NoMatches != 1 {
		t.Errorf("date stats = %+v", agg.DateAccuracy)
	}
	if agg.VolumeIssueAccuracy.MissingFields != 1 {
		t.Errorf("volume stats = %+v", agg.VolumeIssueAccuracy)
	}

	if want := 0.9; math.Abs(agg.TitleAccuracy.AverageScore-want) > 1e-9 {
		t.Errorf("title average = %f, want %f", agg.TitleAccuracy.AverageScore, want)
	}
	if want := (0.8 + 0.52) / 2; math.Abs(agg.OverallAccuracy-want) > 1e-9 {
		t.Errorf("overall accuracy = %f, want %f", agg.OverallAccuracy, want)
	}
	if agg.AverageProcessingTime != 15*time.Millisecond {
		t.Errorf("average processing time = %s", agg.AverageProcessingTime)
	}
}

func TestPercentage(t *testing.T) {
	if got := percentage(0, 0); got != 0.0 {
		t.Errorf("percentage(0, 0) = %f, want 0", got)
	}
	if math.IsNaN(percentage(0, 0)) {
		t.Error("percentage(0, 0) must not be NaN")
	}
	if got := percentage(1, 4); math.Abs(got-25.0) > 1e-9 {
		t.Errorf("percentage(1, 4) = %f, want 25", got)
	}
}

func TestCalculateAverage(t *testing.T) {
	if got := calculateAverage(nil); got != 0.0 {
		t.Errorf("calculateAverage(nil) = %f", got)
	}
	if got := calculateAverage([]float64{0.5, 1.0}); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("calculateAverage() = %f", got)
	}
}
