package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// collectionData holds a collection's documents plus their insertion order,
// which serves as the store's natural order.
type collectionData struct {
	docs  map[string]Document
	order []string
}

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// Document ids are generated UUIDs. It backs tests and runs the services
// without a MongoDB instance.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*collectionData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*collectionData),
	}
}

func (s *MemoryStore) List(_ context.Context, collection string, window PageWindow) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Document{}

	col, ok := s.data[collection]
	if !ok {
		return result, nil
	}

	for i := window.Offset; i < int64(len(col.order)); i++ {
		if int64(len(result)) >= window.Limit {
			break
		}
		result = append(result, copyDocument(col.docs[col.order[i]]))
	}
	return result, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	if err := validateUUID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.data[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := col.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) Insert(_ context.Context, collection string, doc Document) (InsertResult, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.data[collection]
	if !ok {
		col = &collectionData{docs: make(map[string]Document)}
		s.data[collection] = col
	}

	stored := copyDocument(doc)
	stored["_id"] = id
	col.docs[id] = stored
	col.order = append(col.order, id)

	return InsertResult{InsertedID: id}, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields Document) (UpdateResult, error) {
	var result UpdateResult

	if err := validateUUID(id); err != nil {
		return result, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.data[collection]
	if !ok {
		return result, nil
	}
	doc, ok := col.docs[id]
	if !ok {
		return result, nil
	}

	result.MatchedCount = 1
	if len(fields) > 0 {
		result.ModifiedCount = 1
	}
	for k, v := range fields {
		doc[k] = v
	}
	return result, nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) (DeleteResult, error) {
	var result DeleteResult

	if err := validateUUID(id); err != nil {
		return result, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.data[collection]
	if !ok {
		return result, nil
	}
	if _, ok := col.docs[id]; !ok {
		return result, nil
	}

	delete(col.docs, id)
	for i, oid := range col.order {
		if oid == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	result.DeletedCount = 1
	return result, nil
}

func validateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
