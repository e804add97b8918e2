package cmd

import (
	"github.com/lehigh-university-libraries/pagemeta/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var (
		datasetPath string
		language    string
		sampleSize  int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate extraction accuracy against a labeled dataset",
		Long: `Runs the heuristic engine over a labeled dataset of page texts and
compares the extracted title, date, and volume/issue against the labels.

Datasets are JSONL or Parquet files of labeled pages. A YAML report is
written to the evals/ directory and a summary is printed.`,
		Example: `  # Evaluate against a JSONL dataset
  pagemeta eval --dataset pages.jsonl

  # Evaluate a 100-page sample of a Parquet dataset
  pagemeta eval --dataset pages.parquet --sample 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalcmd.Run(datasetPath, language, sampleSize, concurrency)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to labeled dataset (.jsonl or .parquet)")
	cmd.Flags().StringVar(&language, "language", "any", "Language hint for pages without one (en, es, any)")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Evaluate only the first N pages (0 = all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of pages to evaluate in parallel")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
