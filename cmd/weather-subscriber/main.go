// weather-subscriber consumes weather payloads from the weather-data queue
// and re-posts each one to the weather API's ingest endpoint. Messages the
// API rejects are dead-lettered, not retried.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/svclab/user-weather-services/internal/config"
	"github.com/svclab/user-weather-services/internal/queue"
)

const reconnectWait = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	ingestURL := cfg.WeatherServiceURL + "/api/weather"

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	q := queue.NewClient(cfg.AMQPURL)

	for {
		err := q.Consume(ctx, func(body []byte) error {
			return ingest(ctx, client, ingestURL, body)
		})
		if ctx.Err() != nil {
			return
		}

		log.Printf("weather-subscriber: consume loop ended: %v; reconnecting in %s", err, reconnectWait)
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectWait):
		}
	}
}

func ingest(ctx context.Context, client *http.Client, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("weather-api returned status %d", resp.StatusCode)
	}

	log.Println("weather-subscriber: payload ingested")
	return nil
}
