// Package summarizer calls the external note-summary webhook.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
)

const maxResponseBytes = 1 << 20

var errUnavailable = httperr.ErrBusiness("summary_unavailable")

type request struct {
	CustomerName string   `json:"customer_name"`
	Notes        []string `json:"notes"`
}

type Webhook struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewWebhook allows a burst of 5 calls refilled at one every 2 seconds.
func NewWebhook(url string, timeout time.Duration, log *slog.Logger) *Webhook {
	return &Webhook{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
		log:     logger.Component(log, "summarizer"),
	}
}

// Client is exposed for tests that stub the transport.
func (w *Webhook) Client() *http.Client {
	return w.client
}

// Summarize posts the notes and extracts a summary from whatever shape the
// webhook answers with. Every failure maps to summary_unavailable.
func (w *Webhook) Summarize(ctx context.Context, customerName string, notes []string) (string, error) {
	if !w.limiter.Allow() {
		w.log.Warn("summary rate limited")
		return "", fmt.Errorf("%w: rate limited", errUnavailable)
	}

	body, err := json.Marshal(request{CustomerName: customerName, Notes: notes})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")

	start := time.Now()
	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Warn("summary webhook call failed", "error", err)
		return "", fmt.Errorf("%w: %v", errUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		w.log.Warn("summary webhook bad status",
			"status", resp.StatusCode,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: status %d", errUnavailable, resp.StatusCode)
	}

	summary, ok := Parse(raw)
	if !ok {
		w.log.Warn("summary webhook unparseable response", "bytes", len(raw))
		return "", fmt.Errorf("%w: empty summary", errUnavailable)
	}

	w.log.Debug("summary received", "latency_ms", time.Since(start).Milliseconds())
	return summary, nil
}

var textKeys = []string{"summary", "output", "text", "message", "result", "content"}

// Parse pulls the summary text out of the response body. Accepted shapes:
// an object with one of textKeys, the same nested under "data", an array of
// such objects (first match wins), a JSON string, or plain text.
func Parse(raw []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", false
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return "", false
		}
		return trimmed, true
	}

	s := extract(v, 0)
	return s, s != ""
}

func extract(v any, depth int) string {
	if depth > 4 {
		return ""
	}

	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := extract(item, depth+1); s != "" {
				return s
			}
		}
	case map[string]any:
		for _, k := range textKeys {
			if val, ok := t[k]; ok {
				if s := extract(val, depth+1); s != "" {
					return s
				}
			}
		}
		if data, ok := t["data"]; ok {
			return extract(data, depth+1)
		}
	}
	return ""
}
