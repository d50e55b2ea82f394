package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/svclab/user-weather-services/internal/docstore"
)

// Fetcher abstracts the external weather data source.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (docstore.Document, error)
}

// OpenWeatherFetcher implements Fetcher against the OpenWeatherMap current
// weather endpoint. The decoded response body is returned verbatim; no
// normalization, retry, or caching happens here. A circuit breaker keeps a
// persistently failing upstream from being hammered, but a single invocation
// makes at most one outbound call.
type OpenWeatherFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherFetcher(client *http.Client, baseURL, apiKey string) *OpenWeatherFetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherFetcher{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

func (f *OpenWeatherFetcher) Fetch(ctx context.Context, q Query) (docstore.Document, error) {
	values, err := q.values()
	if err != nil {
		return nil, err
	}
	if f.apiKey != "" {
		values.Set("appid", f.apiKey)
	}

	u := fmt.Sprintf("%s?%s", f.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	result, err := f.circuit.Execute(func() (interface{}, error) {
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
		}

		var payload docstore.Document
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload, ok := result.(docstore.Document)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return payload, nil
}
