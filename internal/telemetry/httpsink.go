package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coinworks/adwidget/internal/domain"
	"github.com/coinworks/adwidget/internal/session"
)

type interactionBody struct {
	InteractionType domain.InteractionType `json:"interactionType"`
	CreditsEarned   int64                  `json:"creditsEarned"`
	Guest           bool                   `json:"guest"`
}

// HTTPSink posts interaction events to the platform's interactions
// endpoint, POST /ads/ad/{adId}/interactions.
type HTTPSink struct {
	baseURL string
	sess    session.Session
	client  *http.Client
}

// NewHTTPSink creates the default interactions sink.
func NewHTTPSink(baseURL string, sess session.Session, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		baseURL: strings.TrimRight(baseURL, "/"),
		sess:    sess,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSink) Name() string { return "http" }

func (s *HTTPSink) Deliver(ctx context.Context, ev domain.InteractionEvent) error {
	body, err := json.Marshal(interactionBody{
		InteractionType: ev.Type,
		CreditsEarned:   ev.CreditsEarned,
		Guest:           ev.Guest,
	})
	if err != nil {
		return fmt.Errorf("encode interaction: %w", err)
	}

	url := fmt.Sprintf("%s/ads/ad/%d/interactions", s.baseURL, ev.AdID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := s.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post interaction: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("interactions endpoint returned %d", resp.StatusCode)
	}
	return nil
}
