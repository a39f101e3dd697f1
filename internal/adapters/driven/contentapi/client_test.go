package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.EscapedPath()}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			if err := json.Unmarshal(data, &rec.body); err != nil {
				t.Errorf("invalid request body: %v", err)
			}
		}
		requests = append(requests, rec)

		if r.Method == http.MethodGet && r.URL.Path == "/api/content" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"hero":{"name":"Remote"}}`))
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestClient_Fetch(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK)
	client := NewClient(DefaultConfig(server.URL + "/api/"))

	data, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := domain.ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc[domain.SectionHero]["name"] != "Remote" {
		t.Errorf("unexpected hero name %v", doc[domain.SectionHero]["name"])
	}
	if client.Name() != domain.TierRemote {
		t.Errorf("expected tier name %q, got %q", domain.TierRemote, client.Name())
	}
}

func TestClient_FetchNonSuccess(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError)
	client := NewClient(DefaultConfig(server.URL + "/api"))

	_, err := client.Fetch(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestClient_FetchUnreachable(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	_, err := client.Fetch(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestClient_Replicate(t *testing.T) {
	tests := []struct {
		name       string
		op         domain.Operation
		wantMethod string
		wantPath   string
		wantKey    string
	}{
		{
			name:       "set field",
			op:         domain.SetField("name", "Roman").In(domain.SectionHero),
			wantMethod: http.MethodPut,
			wantPath:   "/api/content/hero/name",
			wantKey:    "value",
		},
		{
			name:       "set nested field",
			op:         domain.SetNestedField("social", "facebook.url", "https://fb").In(domain.SectionContact),
			wantMethod: http.MethodPut,
			wantPath:   "/api/content/contact/social/facebook.url",
			wantKey:    "value",
		},
		{
			name:       "set array item",
			op:         domain.SetArrayItem("works", 2, map[string]any{"title": "x"}).In(domain.SectionPortfolio),
			wantMethod: http.MethodPut,
			wantPath:   "/api/content/portfolio/works/2",
			wantKey:    "value",
		},
		{
			name:       "append array item",
			op:         domain.AppendArrayItem("videos", map[string]any{"id": 1}).In(domain.SectionVideoRepertoire),
			wantMethod: http.MethodPost,
			wantPath:   "/api/content/videoRepertoire/videos",
			wantKey:    "item",
		},
		{
			name:       "remove array item",
			op:         domain.RemoveArrayItem("works", 0).In(domain.SectionPortfolio),
			wantMethod: http.MethodDelete,
			wantPath:   "/api/content/portfolio/works/0",
		},
		{
			name:       "escapes path segments",
			op:         domain.SetField("a b", 1).In(domain.SectionHero),
			wantMethod: http.MethodPut,
			wantPath:   "/api/content/hero/a%20b",
			wantKey:    "value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, requests := newTestServer(t, http.StatusOK)
			client := NewClient(DefaultConfig(server.URL + "/api"))

			if err := client.Replicate(context.Background(), tt.op); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(*requests) != 1 {
				t.Fatalf("expected 1 request, got %d", len(*requests))
			}
			got := (*requests)[0]
			if got.method != tt.wantMethod {
				t.Errorf("expected method %s, got %s", tt.wantMethod, got.method)
			}
			if got.path != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, got.path)
			}
			if tt.wantKey != "" {
				if _, ok := got.body[tt.wantKey]; !ok {
					t.Errorf("expected body key %q, got %v", tt.wantKey, got.body)
				}
			} else if got.body != nil {
				t.Errorf("expected no body, got %v", got.body)
			}
		})
	}
}

func TestClient_ReplicateErrors(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadGateway)
	client := NewClient(DefaultConfig(server.URL))

	if err := client.Replicate(context.Background(), domain.SetField("name", "x").In(domain.SectionHero)); err == nil {
		t.Error("expected error for 502 response")
	}

	err := client.Replicate(context.Background(), domain.SetField("name", "x"))
	if !errors.Is(err, domain.ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection for unresolved operation, got %v", err)
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantError bool
	}{
		{name: "valid http", raw: "http://localhost:3001/api", want: "http://localhost:3001/api"},
		{name: "valid https", raw: "https://content.example.com", want: "https://content.example.com"},
		{name: "strips trailing slash", raw: "http://localhost:3001/api/", want: "http://localhost:3001/api"},
		{name: "rejects empty", raw: "", wantError: true},
		{name: "rejects file scheme", raw: "file:///etc/passwd", wantError: true},
		{name: "rejects no scheme", raw: "localhost:3001", wantError: true},
		{name: "rejects javascript scheme", raw: "javascript:alert(1)", wantError: true},
		{name: "rejects missing host", raw: "http://", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBaseURL(tt.raw)
			if tt.wantError {
				if err == nil {
					t.Errorf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
