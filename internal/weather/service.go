package weather

import (
	"context"
	"log"

	"github.com/svclab/user-weather-services/internal/docstore"
)

const defaultCollection = "weatherInfo"

// Notifier delivers a payload to subscriber endpoints. Delivery outcomes are
// invisible to the caller; the implementation logs failures itself.
type Notifier interface {
	Notify(ctx context.Context, payload interface{}, subscribers []string)
}

// Service is the ingestion pipeline: fetch from the provider, persist,
// and notify subscribers.
type Service struct {
	fetcher     Fetcher
	store       docstore.Store
	notifier    Notifier
	subscribers []string
	collection  string
}

func NewService(fetcher Fetcher, store docstore.Store, notifier Notifier, subscribers []string) *Service {
	return &Service{
		fetcher:     fetcher,
		store:       store,
		notifier:    notifier,
		subscribers: subscribers,
		collection:  defaultCollection,
	}
}

// FetchAndRecord fetches weather for the query and records the payload.
// A fetch failure is fatal; a persistence failure is not: the payload is
// still returned and the error only logged. Persistence here is best-effort
// bookkeeping, the fetched data is the product.
func (s *Service) FetchAndRecord(ctx context.Context, q Query) (docstore.Document, error) {
	payload, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Insert(ctx, s.collection, payload); err != nil {
		log.Printf("weather: recording fetched payload failed: %v", err)
	}

	return payload, nil
}

// IngestAndNotify persists a caller-supplied document, fans the insert
// result out to the configured subscribers, and returns that result.
// Notification begins only after persistence has completed; its outcome
// never affects the response.
func (s *Service) IngestAndNotify(ctx context.Context, doc docstore.Document) (docstore.InsertResult, error) {
	result, err := s.store.Insert(ctx, s.collection, doc)
	if err != nil {
		return docstore.InsertResult{}, err
	}

	s.notifier.Notify(ctx, result, s.subscribers)

	return result, nil
}
