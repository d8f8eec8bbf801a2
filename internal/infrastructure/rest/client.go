// Package rest implements the gateways to the remote café backend: plain
// JSON over HTTP with a bearer credential read from the local store. The
// gateways own no state.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
	"github.com/spotcheck/spotcheck/internal/metrics"
)

const requestTimeout = 15 * time.Second

// Client is the shared HTTP plumbing for both gateways: it builds requests
// against the backend origin, attaches the bearer credential when asked,
// and maps failures to the typed errors in domain.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   ports.CredentialStore
	logger  zerolog.Logger
}

func NewClient(baseURL string, creds ports.CredentialStore, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
		creds:   creds,
		logger:  logger,
	}
}

// errorEnvelope is the backend's error body. Older backend variants use
// "err", newer ones "message"; both are accepted.
type errorEnvelope struct {
	Err     string `json:"err"`
	Message string `json:"message"`
}

func (e errorEnvelope) text() string {
	if e.Err != "" {
		return e.Err
	}
	return e.Message
}

// roundTrip performs one request and returns the raw status and body.
// Transport-level failures (unreachable backend, unreadable body) come
// back as *domain.TransportError.
func (c *Client) roundTrip(ctx context.Context, op, method, path string, body any, authed bool) (int, []byte, error) {
	timer := prometheus.NewTimer(metrics.APIRequestDuration.WithLabelValues(op))
	defer timer.ObserveDuration()

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, terr := c.creds.Token()
		if terr != nil {
			c.logger.Warn().Err(terr).Str("operation", op).Msg("failed to read stored token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.logger.With().Str("operation", op).Str("request_id", requestID).Logger()
	log.Debug().Str("method", method).Str("path", path).Msg("calling backend")

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return 0, nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return resp.StatusCode, nil, &domain.TransportError{Op: op, Err: err}
	}

	return resp.StatusCode, data, nil
}

// do performs a request and decodes a successful response into out. A 404
// maps to domain.ErrCafeNotFound; any other non-success status maps to
// *domain.RemoteError carrying the backend's message.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, authed bool) error {
	status, data, err := c.roundTrip(ctx, op, method, path, body, authed)
	if err != nil {
		return err
	}

	if status >= http.StatusBadRequest {
		var env errorEnvelope
		_ = json.Unmarshal(data, &env)
		if status == http.StatusNotFound {
			metrics.APIRequestsTotal.WithLabelValues(op, "not_found").Inc()
			return domain.ErrCafeNotFound
		}
		metrics.APIRequestsTotal.WithLabelValues(op, "remote_error").Inc()
		return &domain.RemoteError{StatusCode: status, Message: env.text()}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			metrics.APIRequestsTotal.WithLabelValues(op, "transport_error").Inc()
			return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	metrics.APIRequestsTotal.WithLabelValues(op, "ok").Inc()
	return nil
}
