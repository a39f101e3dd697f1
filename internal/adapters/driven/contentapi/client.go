package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.ContentSource     = (*Client)(nil)
	_ driven.ContentReplicator = (*Client)(nil)
)

// maxDocumentBytes caps the response body read from GET /content
const maxDocumentBytes = 32 << 20

// Client talks to the remote content API. It is both the first tier of the
// load cascade and the replication target for individual mutations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds content API connection configuration
type Config struct {
	// BaseURL is the API root (e.g., http://localhost:3001/api)
	BaseURL string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// NewClient creates a new content API client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name identifies the tier
func (c *Client) Name() string {
	return domain.TierRemote
}

// Fetch retrieves the whole document: GET /content
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/content", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: content api returned %s", domain.ErrSourceUnavailable, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read content api response: %w", err)
	}
	return body, nil
}

// Replicate mirrors one operation:
//
//	setField        PUT    /content/{section}/{field}            {"value": ...}
//	setNestedField  PUT    /content/{section}/{field}/{subPath}  {"value": ...}
//	setArrayItem    PUT    /content/{section}/{field}/{index}    {"value": ...}
//	appendArrayItem POST   /content/{section}/{field}            {"item": ...}
//	removeArrayItem DELETE /content/{section}/{field}/{index}
func (c *Client) Replicate(ctx context.Context, op domain.Operation) error {
	if !op.Section.Valid() {
		return fmt.Errorf("%w: replicated operation needs a section", domain.ErrUnknownSection)
	}

	path := fmt.Sprintf("%s/content/%s/%s", c.baseURL, url.PathEscape(string(op.Section)), url.PathEscape(op.Field))

	var (
		method string
		body   any
	)
	switch op.Kind {
	case domain.OpSetField:
		method, body = http.MethodPut, valueBody{Value: op.Value}
	case domain.OpSetNestedField:
		method, body = http.MethodPut, valueBody{Value: op.Value}
		path += "/" + url.PathEscape(op.SubPath)
	case domain.OpSetArrayItem:
		method, body = http.MethodPut, valueBody{Value: op.Value}
		path += "/" + strconv.Itoa(op.Index)
	case domain.OpAppendArrayItem:
		method, body = http.MethodPost, itemBody{Item: op.Value}
	case domain.OpRemoveArrayItem:
		method = http.MethodDelete
		path += "/" + strconv.Itoa(op.Index)
	default:
		return fmt.Errorf("%w: unknown operation kind %q", domain.ErrInvalidInput, op.Kind)
	}

	return c.do(ctx, method, path, body)
}

type valueBody struct {
	Value any `json:"value"`
}

type itemBody struct {
	Item any `json:"item"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("content api %s %s failed: %s - %s", method, path, resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// ValidateBaseURL checks an API root is an absolute http(s) URL and strips
// any trailing slash.
func ValidateBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty url", domain.ErrInvalidInput)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidInput, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", domain.ErrInvalidInput)
	}
	return strings.TrimSuffix(raw, "/"), nil
}
