package storage

import (
	"sync"

	"github.com/lehigh-university-libraries/pagemeta/internal/models"
)

// DocumentStore holds processed documents for the serve mode, keyed by
// document name. Safe for concurrent use.
type DocumentStore struct {
	documents map[string]*models.ProcessedDocument
	mu        sync.RWMutex
}

func New() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*models.ProcessedDocument),
	}
}

func (s *DocumentStore) Get(name string) (*models.ProcessedDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, exists := s.documents[name]
	return doc, exists
}

func (s *DocumentStore) Set(name string, doc *models.ProcessedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[name] = doc
}

func (s *DocumentStore) GetAll() map[string]*models.ProcessedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.ProcessedDocument, len(s.documents))
	for k, v := range s.documents {
		result[k] = v
	}
	return result
}

func (s *DocumentStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, name)
}
