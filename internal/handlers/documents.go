package handlers

import (
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/pagemeta/internal/models"
)

func (h *Handler) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		documents := h.documentStore.GetAll()
		documentList := make([]*models.ProcessedDocument, 0, len(documents))
		for _, doc := range documents {
			documentList = append(documentList, doc)
		}
		h.writeJSON(w, documentList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleDocumentDetail(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/documents/")

	doc, ok := h.getDocumentOrError(w, name)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, doc)
	case "DELETE":
		h.documentStore.Delete(name)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
