package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/pagemeta/internal/metadata"
	"github.com/lehigh-university-libraries/pagemeta/internal/models"
)

func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// JSON requests carry already-extracted page text
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleTextExtract(w, r)
		return
	}

	// Everything else is a PDF upload
	h.handleFileExtract(w, r)
}

func (h *Handler) handleTextExtract(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Text     string `json:"text"`
		Filename string `json:"filename"`
		Language string `json:"language"` // "en", "es", or "any"
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Text == "" {
		h.writeError(w, "text is required", http.StatusBadRequest)
		return
	}
	if request.Filename == "" {
		request.Filename = "inline"
	}

	result := metadata.Extract(request.Text, request.Filename, request.Language)

	doc := &models.ProcessedDocument{
		Metadata:    result,
		Success:     result.Error == "",
		Error:       result.Error,
		ProcessedAt: time.Now(),
	}
	h.documentStore.Set(request.Filename, doc)

	h.writeJSON(w, result)
}

func (h *Handler) handleFileExtract(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		h.writeError(w, "Only PDF uploads are supported", http.StatusBadRequest)
		return
	}

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Limit file size to 50MB
	fileData, err := io.ReadAll(io.LimitReader(file, 50*1024*1024))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) >= 50*1024*1024 {
		h.writeError(w, "File too large (max 50MB)", http.StatusBadRequest)
		return
	}

	path := filepath.Join("uploads", filepath.Base(header.Filename))
	if err := os.WriteFile(path, fileData, 0644); err != nil {
		h.writeError(w, "Failed to save upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	doc := h.processor.ProcessFile(r.Context(), path)
	h.documentStore.Set(filepath.Base(header.Filename), doc)

	h.writeJSON(w, doc)
}
