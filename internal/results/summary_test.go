package results

import (
	"math"
	"testing"

	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
	"github.com/lehigh-university-libraries/pagemeta/internal/models"
)

func TestSummarize(t *testing.T) {
	docs := []*models.ProcessedDocument{
		{
			Success: true,
			UsedOCR: true,
			Metadata: metadata.ExtractionResult{
				Title:                metadata.Field{Value: "The Harvest Begins", Confidence: 0.9, Source: metadata.SourceHeuristic},
				Date:                 metadata.Field{Value: "1984/10/15", Confidence: 1.0, Source: metadata.SourcePatternMatch},
				VolumeIssue:          metadata.Field{Value: "Vol. 3, No. 2", Confidence: 0.9, Source: metadata.SourcePatternMatch},
				ExtractionConfidence: 0.78,
			},
		},
		{
			Success:      true,
			UsedFallback: true,
			Metadata: metadata.ExtractionResult{
				Title:                metadata.Field{Value: "Editorial", Confidence: 0.7, Source: metadata.SourceHeuristic},
				ExtractionConfidence: 0.23,
			},
		},
		{
			Success: false,
			Error:   "no text layer and no scan found",
		},
	}

	summary := Summarize(NewRunConfig("pages/", "es", "", "", 4, 0.5), docs)

	if summary.TotalDocuments != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1",
			summary.TotalDocuments, summary.Succeeded, summary.Failed)
	}
	if summary.UsedOCR != 1 || summary.UsedFallback != 1 {
		t.Errorf("ocr/fallback = %d/%d, want 1/1", summary.UsedOCR, summary.UsedFallback)
	}
	if summary.Title.Extracted != 2 || summary.Title.Missing != 0 {
		t.Errorf("title tallies = %d/%d, want 2/0", summary.Title.Extracted, summary.Title.Missing)
	}
	if summary.Date.Extracted != 1 || summary.Date.Missing != 1 {
		t.Errorf("date tallies = %d/%d, want 1/1", summary.Date.Extracted, summary.Date.Missing)
	}

	if got, want := summary.Title.AverageConfidence, 0.8; math.Abs(got-want) > 1e-9 {
		t.Errorf("title average = %f, want %f", got, want)
	}
	if got, want := summary.Date.AverageConfidence, 0.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("date average = %f, want %f", got, want)
	}
	if got, want := summary.AverageExtractionConfidence, (0.78+0.23)/2; math.Abs(got-want) > 1e-9 {
		t.Errorf("overall average = %f, want %f", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(RunConfig{}, nil)
	if summary.TotalDocuments != 0 || summary.AverageExtractionConfidence != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
}
