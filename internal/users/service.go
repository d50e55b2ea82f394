// Package users exposes CRUD access to the user collection of the
// document store. Users are schema-less: whatever the caller sends is
// what gets stored, keyed by a store-assigned id.
package users

import (
	"context"

	"github.com/svclab/user-weather-services/internal/docstore"
)

const defaultCollection = "users"

// Service binds the generic document store to the user collection.
type Service struct {
	store      docstore.Store
	collection string
}

func NewService(store docstore.Store) *Service {
	return &Service{
		store:      store,
		collection: defaultCollection,
	}
}

func (s *Service) List(ctx context.Context, window docstore.PageWindow) ([]docstore.Document, error) {
	return s.store.List(ctx, s.collection, window)
}

func (s *Service) Get(ctx context.Context, id string) (docstore.Document, error) {
	return s.store.Get(ctx, s.collection, id)
}

func (s *Service) Create(ctx context.Context, doc docstore.Document) (docstore.InsertResult, error) {
	return s.store.Insert(ctx, s.collection, doc)
}

func (s *Service) Update(ctx context.Context, id string, fields docstore.Document) (docstore.UpdateResult, error) {
	return s.store.Update(ctx, s.collection, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) (docstore.DeleteResult, error) {
	return s.store.Delete(ctx, s.collection, id)
}
