package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagemeta",
		Short: "Bibliographic metadata extraction for scanned periodical pages",
		Long: `Pagemeta infers title, publication date, and volume/issue numbering from
the OCR text of scanned periodical pages (newspapers, magazines, bulletins;
English or Spanish), with a confidence score attached to every field.

Pattern-based heuristics do the work; a vision-capable LLM (Ollama, OpenAI,
or Gemini) can OCR pages with no text layer and fill in fields the
heuristics could not extract with confidence.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
