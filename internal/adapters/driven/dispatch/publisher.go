// Package dispatch notifies a repository-dispatch style automation hook that
// the document changed, so the static site can be rebuilt.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentPublisher = (*Publisher)(nil)

// EventType is sent as event_type on every dispatch
const EventType = "content-updated"

// Config holds automation hook configuration
type Config struct {
	// URL is the dispatch endpoint (e.g., https://api.github.com/repos/{owner}/{repo}/dispatches)
	URL string

	// Token is sent as "Authorization: token <Token>"
	Token string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// Publisher posts the whole document to the automation hook
type Publisher struct {
	url        string
	token      string
	httpClient *http.Client
}

type dispatchRequest struct {
	EventType     string        `json:"event_type"`
	ClientPayload clientPayload `json:"client_payload"`
}

type clientPayload struct {
	// Content is the document as indented JSON text
	Content string `json:"content"`
}

// NewPublisher creates a Publisher. It is disabled unless both URL and Token are set.
func NewPublisher(cfg Config) *Publisher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Publisher{
		url:        cfg.URL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the hook is configured
func (p *Publisher) Enabled() bool {
	return p.url != "" && p.token != ""
}

// Publish sends the document
func (p *Publisher) Publish(ctx context.Context, doc domain.ContentDocument) error {
	if !p.Enabled() {
		return domain.ErrPublisherDisabled
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	body, err := json.Marshal(dispatchRequest{
		EventType:     EventType,
		ClientPayload: clientPayload{Content: string(content)},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "token "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("dispatch failed: %s - %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}
