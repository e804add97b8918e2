package results

import (
	"fmt"
	"os"
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/models"
	"gopkg.in/yaml.v3"
)

// RunConfig records how a batch run was configured.
type RunConfig struct {
	InputPath string  `yaml:"inputpath"`
	Language  string  `yaml:"language"`
	Provider  string  `yaml:"provider,omitempty"`
	Model     string  `yaml:"model,omitempty"`
	Workers   int     `yaml:"workers"`
	Threshold float64 `yaml:"threshold"`
	Timestamp string  `yaml:"timestamp"`
}

// FieldSummary holds aggregate statistics for one metadata field.
type FieldSummary struct {
	Extracted         int     `yaml:"extracted"`
	Missing           int     `yaml:"missing"`
	AverageConfidence float64 `yaml:"averageconfidence"`
}

// Summary is the YAML run summary written alongside the JSONL output.
type Summary struct {
	Config RunConfig `yaml:"config"`

	TotalDocuments int `yaml:"totaldocuments"`
	Succeeded      int `yaml:"succeeded"`
	Failed         int `yaml:"failed"`
	UsedOCR        int `yaml:"usedocr"`
	UsedFallback   int `yaml:"usedfallback"`

	Title       FieldSummary `yaml:"title"`
	Date        FieldSummary `yaml:"date"`
	VolumeIssue FieldSummary `yaml:"volumeissue"`

	AverageExtractionConfidence float64 `yaml:"averageextractionconfidence"`
}

// Summarize aggregates per-document records into a run summary.
func Summarize(config RunConfig, docs []*models.ProcessedDocument) *Summary {
	summary := &Summary{
		Config:         config,
		TotalDocuments: len(docs),
	}

	var titleSum, dateSum, volumeSum, overallSum float64

	for _, doc := range docs {
		if !doc.Success {
			summary.Failed++
			continue
		}
		summary.Succeeded++

		if doc.UsedOCR {
			summary.UsedOCR++
		}
		if doc.UsedFallback {
			summary.UsedFallback++
		}

		tallyField(&summary.Title, &titleSum, doc.Metadata.Title.Value, doc.Metadata.Title.Confidence)
		tallyField(&summary.Date, &dateSum, doc.Metadata.Date.Value, doc.Metadata.Date.Confidence)
		tallyField(&summary.VolumeIssue, &volumeSum, doc.Metadata.VolumeIssue.Value, doc.Metadata.VolumeIssue.Confidence)
		overallSum += doc.Metadata.ExtractionConfidence
	}

	if summary.Succeeded > 0 {
		n := float64(summary.Succeeded)
		summary.Title.AverageConfidence = titleSum / n
		summary.Date.AverageConfidence = dateSum / n
		summary.VolumeIssue.AverageConfidence = volumeSum / n
		summary.AverageExtractionConfidence = overallSum / n
	}

	return summary
}

func tallyField(fs *FieldSummary, sum *float64, value string, confidence float64) {
	if value == "" {
		fs.Missing++
		return
	}
	fs.Extracted++
	*sum += confidence
}

// SaveToYAML writes the summary to the given path.
func (s *Summary) SaveToYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// NewRunConfig fills in a RunConfig with the current timestamp.
func NewRunConfig(inputPath, language, provider, model string, workers int, threshold float64) RunConfig {
	return RunConfig{
		InputPath: inputPath,
		Language:  language,
		Provider:  provider,
		Model:     model,
		Workers:   workers,
		Threshold: threshold,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
	}
}
