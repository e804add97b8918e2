package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/batch"
	"github.com/lehigh-university-libraries/pagemeta/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port     string
		provider string
		model    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the metadata extraction HTTP API",
		Long: `Starts an HTTP API for metadata extraction on the specified port.

POST page text or a PDF to /api/extract and the extraction result is
returned and kept in memory, browsable under /api/documents.`,
		Example: `  # Start server on default port 8888
  pagemeta serve

  # Start server on custom port
  pagemeta serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, err := batch.NewProcessor(batch.Options{
				Provider: provider,
				Model:    model,
			})
			if err != nil {
				return err
			}
			handler := handlers.New(processor)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/extract", handler.HandleExtract)
			mux.HandleFunc("/api/documents", handler.HandleDocuments)
			mux.HandleFunc("/api/documents/", handler.HandleDocumentDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Pagemeta API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider for OCR on uploads (ollama, openai, gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")

	return cmd
}
