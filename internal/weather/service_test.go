package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/svclab/user-weather-services/internal/docstore"
)

type stubFetcher struct {
	payload docstore.Document
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(_ context.Context, _ Query) (docstore.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

// failingStore wraps a MemoryStore and fails every insert.
type failingStore struct {
	*docstore.MemoryStore
}

func (s *failingStore) Insert(_ context.Context, _ string, _ docstore.Document) (docstore.InsertResult, error) {
	return docstore.InsertResult{}, docstore.ErrUnavailable
}

type recordingNotifier struct {
	calls       int
	lastPayload interface{}
	lastSubs    []string
}

func (n *recordingNotifier) Notify(_ context.Context, payload interface{}, subscribers []string) {
	n.calls++
	n.lastPayload = payload
	n.lastSubs = subscribers
}

func TestFetchAndRecordPersistsPayload(t *testing.T) {
	store := docstore.NewMemoryStore()
	fetcher := &stubFetcher{payload: docstore.Document{"temp": 21.5}}
	svc := NewService(fetcher, store, &recordingNotifier{}, nil)

	payload, err := svc.FetchAndRecord(context.Background(), Query{Lat: "1", Lon: "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["temp"] != 21.5 {
		t.Fatalf("unexpected payload: %v", payload)
	}

	docs, err := store.List(context.Background(), "weatherInfo", docstore.PageWindow{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 1 || docs[0]["temp"] != 21.5 {
		t.Fatalf("payload not persisted: %v", docs)
	}
}

func TestFetchAndRecordSwallowsPersistenceFailure(t *testing.T) {
	store := &failingStore{docstore.NewMemoryStore()}
	fetcher := &stubFetcher{payload: docstore.Document{"temp": 3.0}}
	svc := NewService(fetcher, store, &recordingNotifier{}, nil)

	payload, err := svc.FetchAndRecord(context.Background(), Query{Lat: "1", Lon: "2"})
	if err != nil {
		t.Fatalf("persistence failure must not fail the fetch, got %v", err)
	}
	if payload["temp"] != 3.0 {
		t.Fatalf("payload must still be returned, got %v", payload)
	}
}

func TestFetchAndRecordFetchFailureIsFatal(t *testing.T) {
	store := docstore.NewMemoryStore()
	fetcher := &stubFetcher{err: ErrMissingParameters}
	svc := NewService(fetcher, store, &recordingNotifier{}, nil)

	_, err := svc.FetchAndRecord(context.Background(), Query{})
	if !errors.Is(err, ErrMissingParameters) {
		t.Fatalf("expected ErrMissingParameters, got %v", err)
	}

	docs, err := store.List(context.Background(), "weatherInfo", docstore.PageWindow{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("nothing must be persisted when the fetch fails, got %d docs", len(docs))
	}
}

func TestIngestAndNotifyPassesInsertResult(t *testing.T) {
	store := docstore.NewMemoryStore()
	notifier := &recordingNotifier{}
	subs := []string{"http://gateway.local/hook"}
	svc := NewService(&stubFetcher{}, store, notifier, subs)

	result, err := svc.IngestAndNotify(context.Background(), docstore.Document{"insight": "storm incoming"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InsertedID == "" {
		t.Fatal("expected an inserted id")
	}

	if notifier.calls != 1 {
		t.Fatalf("expected one notify call, got %d", notifier.calls)
	}
	got, ok := notifier.lastPayload.(docstore.InsertResult)
	if !ok || got.InsertedID != result.InsertedID {
		t.Fatalf("notifier must receive the insert result, got %v", notifier.lastPayload)
	}
	if len(notifier.lastSubs) != 1 || notifier.lastSubs[0] != subs[0] {
		t.Fatalf("unexpected subscriber set: %v", notifier.lastSubs)
	}
}

func TestIngestAndNotifySkipsNotifyOnStoreFault(t *testing.T) {
	store := &failingStore{docstore.NewMemoryStore()}
	notifier := &recordingNotifier{}
	svc := NewService(&stubFetcher{}, store, notifier, []string{"http://gateway.local/hook"})

	_, err := svc.IngestAndNotify(context.Background(), docstore.Document{"x": 1})
	if !errors.Is(err, docstore.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if notifier.calls != 0 {
		t.Fatalf("notify must not run when persistence fails, got %d calls", notifier.calls)
	}
}

func TestQueryValuesSelection(t *testing.T) {
	// lat without lon and a usable place falls through to the place query.
	v, err := (Query{Lat: "10", City: "Kyiv", Country: "UA"}).values()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Get("q") != "Kyiv,UA" || v.Has("lat") {
		t.Fatalf("expected place query fallback, got %v", v)
	}
}
