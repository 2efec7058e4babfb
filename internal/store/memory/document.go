// Package memory provides in-memory store implementations backed by
// mutex-guarded maps. Used by tests and when no MongoDB is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

var _ store.DocumentStore = (*DocumentStore)(nil)

type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]models.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]models.Document),
	}
}

func (s *DocumentStore) Insert(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.DocumentID] = *doc
	return nil
}

func (s *DocumentStore) Get(_ context.Context, documentID string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &doc, nil
}

func (s *DocumentStore) GetByFilename(_ context.Context, filename string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.Filename == filename {
			d := doc
			return &d, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *DocumentStore) Update(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[doc.DocumentID]; !ok {
		return models.ErrNotFound
	}
	s.documents[doc.DocumentID] = *doc
	return nil
}

func (s *DocumentStore) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[documentID]; !ok {
		return models.ErrNotFound
	}
	delete(s.documents, documentID)
	return nil
}

func (s *DocumentStore) List(_ context.Context, limit int) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]models.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *DocumentStore) CountByStatus(_ context.Context, status models.DocumentStatus) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, doc := range s.documents {
		if status == "" || doc.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *DocumentStore) CountByUploader(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, doc := range s.documents {
		if doc.UploadedBy == userID {
			n++
		}
	}
	return n, nil
}
