package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
)

const defaultEndpoint = "https://www.google-analytics.com/mp/collect"

// Client sends events to GA4 over the Measurement Protocol.
//
// Every emit is gated by an explicit consent flag from the caller and is
// fire-and-forget: failures are logged, never returned, and never block
// the request that triggered them.
type Client struct {
	measurementID string
	apiSecret     string
	clientID      string
	endpoint      string
	httpClient    *http.Client
}

// NewFromEnv builds a client from GA4_MEASUREMENT_ID / GA4_API_SECRET.
// With either missing the client is disabled and every Emit is a no-op.
func NewFromEnv() *Client {
	return New(os.Getenv("GA4_MEASUREMENT_ID"), os.Getenv("GA4_API_SECRET"))
}

func New(measurementID, apiSecret string) *Client {
	return &Client{
		measurementID: measurementID,
		apiSecret:     apiSecret,
		clientID:      uuid.NewString(),
		endpoint:      defaultEndpoint,
		httpClient:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.measurementID != "" && c.apiSecret != ""
}

// Emit queues one event. Nothing is sent unless the visitor consented
// and the client is configured.
func (c *Client) Emit(consented bool, name string, params map[string]any) {
	if !consented || !c.Enabled() {
		return
	}
	go func() {
		if err := c.send(name, params); err != nil {
			log.Printf("analytics: dropping event %q: %v", name, err)
		}
	}()
}

type mpPayload struct {
	ClientID string    `json:"client_id"`
	Events   []mpEvent `json:"events"`
}

type mpEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

func (c *Client) send(name string, params map[string]any) error {
	body, err := json.Marshal(mpPayload{
		ClientID: c.clientID,
		Events:   []mpEvent{{Name: name, Params: params}},
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	u := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s",
		c.endpoint, url.QueryEscape(c.measurementID), url.QueryEscape(c.apiSecret))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
