package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/pagemeta/internal/batch"
	"github.com/lehigh-university-libraries/pagemeta/internal/models"
	"github.com/lehigh-university-libraries/pagemeta/internal/results"
	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var (
		output      string
		summaryPath string
		language    string
		workers     int
		useFallback bool
		provider    string
		model       string
		threshold   float64
		rateLimit   float64
		describe    bool
	)

	cmd := &cobra.Command{
		Use:   "process [path]",
		Short: "Extract metadata from a PDF or a directory of PDFs",
		Long: `Extracts title, publication date, and volume/issue from scanned
periodical pages. The PDF's text layer is used when present; pages
without one are OCR'd through a vision-capable LLM.

When --fallback is set, pages whose heuristic extraction is weak are
retried through the configured LLM provider.

Results are appended to a JSONL file, one record per document, and a
YAML run summary is written alongside it.`,
		Example: `  # Process a single page
  pagemeta process page_004.pdf

  # Process a directory with the LLM fallback enabled
  pagemeta process ./issues/1984-10/ --fallback --provider ollama

  # Spanish-language bulletin run with 8 workers
  pagemeta process ./bulletins/ --language es --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			processor, err := batch.NewProcessor(batch.Options{
				Language:    language,
				Workers:     workers,
				UseFallback: useFallback,
				Provider:    provider,
				Model:       model,
				Threshold:   threshold,
				RateLimit:   rateLimit,
				Describe:    describe,
			})
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}

			writer, err := results.NewWriter(output)
			if err != nil {
				return err
			}
			defer writer.Close()

			var docs []*models.ProcessedDocument
			if info.IsDir() {
				docs, err = processor.ProcessDirectory(cmd.Context(), path, writer)
				if err != nil {
					return err
				}
			} else {
				if !strings.EqualFold(filepath.Ext(path), ".pdf") {
					return fmt.Errorf("unsupported file type: %s", path)
				}
				doc := processor.ProcessFile(cmd.Context(), path)
				if err := writer.Append(doc); err != nil {
					return err
				}
				docs = []*models.ProcessedDocument{doc}
			}

			config := results.NewRunConfig(path, language, provider, model, workers, threshold)
			summary := results.Summarize(config, docs)
			if err := summary.SaveToYAML(summaryPath); err != nil {
				return err
			}

			slog.Info("Processing complete",
				"documents", summary.TotalDocuments,
				"succeeded", summary.Succeeded,
				"failed", summary.Failed,
				"results", output,
				"summary", summaryPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "results.jsonl", "JSONL output file")
	cmd.Flags().StringVar(&summaryPath, "summary", "summary.yaml", "YAML run summary file")
	cmd.Flags().StringVar(&language, "language", "any", "Language hint for date patterns (en, es, any)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of documents to process in parallel")
	cmd.Flags().BoolVar(&useFallback, "fallback", false, "Ask the LLM provider when heuristic confidence is low")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider for OCR and fallback (ollama, openai, gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "Extraction confidence below which the fallback runs")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 1, "Maximum LLM requests per second")
	cmd.Flags().BoolVar(&describe, "describe", false, "Generate a short description of each page")

	return cmd
}
