package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookGateway POSTs each event as a JSON envelope to a configured delivery
// service. The envelope wraps the event with its kind and an emission
// timestamp so the receiver can route without inspecting the payload.
type WebhookGateway struct {
	url    string
	client *http.Client
	now    func() time.Time
}

func NewWebhookGateway(url string, client *http.Client) *WebhookGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookGateway{url: url, client: client, now: time.Now}
}

type webhookEnvelope struct {
	Kind      string    `json:"kind"`
	EmittedAt time.Time `json:"emitted_at"`
	Event     any       `json:"event"`
}

func (g *WebhookGateway) Deliver(ctx context.Context, kind string, event any) error {
	body, err := json.Marshal(webhookEnvelope{
		Kind:      kind,
		EmittedAt: g.now().UTC(),
		Event:     event,
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver %s event: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
