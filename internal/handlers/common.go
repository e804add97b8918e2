package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/lehigh-university-libraries/pagemeta/internal/batch"
	"github.com/lehigh-university-libraries/pagemeta/internal/models"
	"github.com/lehigh-university-libraries/pagemeta/internal/storage"
)

type Handler struct {
	documentStore *storage.DocumentStore
	processor     *batch.Processor
}

func New(processor *batch.Processor) *Handler {
	return &Handler{
		documentStore: storage.New(),
		processor:     processor,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Document helpers
func (h *Handler) getDocumentOrError(w http.ResponseWriter, name string) (*models.ProcessedDocument, bool) {
	doc, exists := h.documentStore.Get(name)
	if !exists {
		h.writeError(w, "Document not found", http.StatusNotFound)
		return nil, false
	}
	return doc, true
}

func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll("uploads", 0755)
}
