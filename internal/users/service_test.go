package users

import (
	"context"
	"errors"
	"testing"

	"github.com/svclab/user-weather-services/internal/docstore"
)

func TestServiceUsesUserCollection(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	res, err := svc.Create(ctx, docstore.Document{"name": "alice"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Visible through the service.
	doc, err := svc.Get(ctx, res.InsertedID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if doc["name"] != "alice" {
		t.Fatalf("round trip mismatch: %v", doc)
	}

	// And stored under the users collection, nowhere else.
	if _, err := store.Get(ctx, "users", res.InsertedID); err != nil {
		t.Fatalf("expected document in users collection: %v", err)
	}
	if _, err := store.Get(ctx, "weatherInfo", res.InsertedID); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound in other collections, got %v", err)
	}
}
