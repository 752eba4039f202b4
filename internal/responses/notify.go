package responses

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/janambabi/Forgive-Me/internal/telemetry"
)

// Notifier is invoked once per appended record. Implementations must not
// block Append; the Log calls Notify on its own goroutine and discards
// the outcome.
type Notifier interface {
	Notify(rec Record)
}

// WebhookNotifier POSTs each record as JSON to a configured endpoint.
// No retries, no response handling.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *telemetry.JSONLogger
}

func NewWebhookNotifier(url string, logger *telemetry.JSONLogger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

func (n *WebhookNotifier) Notify(rec Record) {
	body, err := json.Marshal(rec)
	if err != nil {
		n.logger.Error("notify.marshal_failed", map[string]any{"error": err.Error()})
		return
	}
	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("notify.failed", map[string]any{"error": err.Error()})
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
