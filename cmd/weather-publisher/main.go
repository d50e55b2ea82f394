// weather-publisher periodically pulls the tracked locations from the
// weather API, fetches current weather for each one, and publishes the
// payloads to the weather-data queue for downstream subscribers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/svclab/user-weather-services/internal/config"
	"github.com/svclab/user-weather-services/internal/queue"
	"github.com/svclab/user-weather-services/internal/scheduler"
	"github.com/svclab/user-weather-services/internal/weather"
)

type publisher struct {
	apiURL string
	client *http.Client
	queue  *queue.Client
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	p := &publisher{
		apiURL: cfg.WeatherServiceURL,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		queue:  queue.NewClient(cfg.AMQPURL),
	}

	sched := scheduler.New(cfg.FetchInterval, 5*time.Minute, p.run)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// First run right away; the scheduler covers the rest.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	p.run(ctx)
	cancel()

	waitCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-waitCtx.Done()
}

func (p *publisher) run(ctx context.Context) {
	locations, err := p.locations(ctx)
	if err != nil {
		log.Printf("weather-publisher: fetching locations failed: %v", err)
		return
	}
	if len(locations) == 0 {
		log.Println("weather-publisher: no locations to publish")
		return
	}

	var wg sync.WaitGroup
	for _, loc := range locations {
		if loc.Lat == nil || loc.Lon == nil {
			log.Printf("weather-publisher: %s has no coordinates, skipping", loc.Key())
			continue
		}

		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.publishWeather(ctx, loc); err != nil {
				log.Printf("weather-publisher: %s failed: %v", loc.Key(), err)
			}
		}()
	}
	wg.Wait()
}

func (p *publisher) locations(ctx context.Context) ([]weather.Location, error) {
	body, err := p.get(ctx, p.apiURL+"/api/weather/locations")
	if err != nil {
		return nil, err
	}

	var locations []weather.Location
	if err := json.Unmarshal(body, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// publishWeather fetches the payload for one location and puts it on the
// queue verbatim.
func (p *publisher) publishWeather(ctx context.Context, loc weather.Location) error {
	u := fmt.Sprintf("%s/api/weather?lat=%f&lon=%f", p.apiURL, *loc.Lat, *loc.Lon)
	body, err := p.get(ctx, u)
	if err != nil {
		return err
	}

	if err := p.queue.Publish(ctx, queue.MainQueue, body); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	log.Printf("weather-publisher: published payload for %s", loc.Key())
	return nil
}

func (p *publisher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s returned status %d", u, resp.StatusCode)
	}
	return body, nil
}
