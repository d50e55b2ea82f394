// Package notify delivers payloads to subscriber endpoints with
// fire-and-forget semantics: every delivery is attempted, failures are
// logged, and nothing is reported back to the caller.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Fanout posts a payload to a set of subscriber addresses concurrently.
type Fanout struct {
	client *http.Client
}

func NewFanout(client *http.Client) *Fanout {
	return &Fanout{client: client}
}

// Notify dispatches one delivery per subscriber and returns once all have
// settled. An empty subscriber set is a no-op. Each delivery's failure is
// captured and logged on its own; it never aborts the others and never
// surfaces to the caller.
func (f *Fanout) Notify(ctx context.Context, payload interface{}, subscribers []string) {
	if len(subscribers) == 0 {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: payload not serializable: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, sub := range subscribers {
		sub := sub
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := f.deliver(ctx, sub, body); err != nil {
				log.Printf("notify: delivery to %s failed: %v", sub, err)
			}
		}()
	}
	wg.Wait()
}

func (f *Fanout) deliver(ctx context.Context, addr string, body []byte) error {
	if err := validate.Var(addr, "required,url"); err != nil {
		return fmt.Errorf("invalid subscriber address %q", addr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subscriber returned status %d", resp.StatusCode)
	}
	return nil
}
