package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	DatasetPath string `yaml:"datasetpath"`
	Language    string `yaml:"language"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier    string             `yaml:"identifier"`
	ExpectedTitle string             `yaml:"expectedtitle"`
	ActualTitle   string             `yaml:"actualtitle"`
	OverallScore  float64            `yaml:"overallscore"`
	FieldScores   map[string]float64 `yaml:"fieldscores"`
	FieldMethods  map[string]string  `yaml:"fieldmethods"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a YAML file in evals/ directory
func SaveToYAML(datasetPath, language string, sampleSize int, results []metrics.EvaluationResult) error {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			DatasetPath: datasetPath,
			Language:    language,
			SampleSize:  sampleSize,
			Timestamp:   timestamp,
		},
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		if r.Error != "" {
			continue // Skip failed evaluations
		}

		evalResult := EvalResult{
			Identifier:    r.ID,
			ExpectedTitle: r.ExpectedTitle,
			ActualTitle:   r.ActualTitle,
		}

		if r.Comparison != nil {
			evalResult.OverallScore = r.Comparison.OverallScore
			evalResult.FieldScores = map[string]float64{
				"title":        r.Comparison.TitleMatch.Score,
				"date":         r.Comparison.DateMatch.Score,
				"volume_issue": r.Comparison.VolumeIssueMatch.Score,
			}
			evalResult.FieldMethods = map[string]string{
				"title":        r.Comparison.TitleMatch.Method,
				"date":         r.Comparison.DateMatch.Method,
				"volume_issue": r.Comparison.VolumeIssueMatch.Method,
			}
		}

		spec.Results = append(spec.Results, evalResult)
	}

	filename := fmt.Sprintf("evals/heuristics-%s.yaml", timestamp)

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("\n✅ Evaluation results saved to: %s\n", absPath)

	return nil
}
