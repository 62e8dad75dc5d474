// Package adclient wraps the ad network's REST endpoints: display-ad
// fetches and the quiz question/answer pair. Interaction telemetry has
// its own pipeline in internal/telemetry.
package adclient

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

	"github.com/coinworks/adwidget/internal/session"
)

// Client issues bearer-authenticated JSON requests against the ad API.
type Client struct {
	baseURL string
	sess    session.Session
	client  *http.Client
	logger  *slog.Logger
}

// New creates an ad API client. baseURL is the API root, e.g.
// "https://platform.example.com/api".
func New(baseURL string, sess session.Session, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		sess:    sess,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// doJSON performs one request and decodes the response body into out.
// A non-2xx status is an error; the body is read fully either way so
// the connection can be reused.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
