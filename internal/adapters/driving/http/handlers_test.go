package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driving"
)

// Mock services for testing

type mockContentService struct {
	documentFn  func() domain.ContentDocument
	readyFn     func() bool
	applyFn     func(ctx context.Context, op domain.Operation) domain.MutationResult
	saveFn      func(ctx context.Context) bool
	restoreFn   func(ctx context.Context) bool
	reloadFn    func(ctx context.Context) (domain.LoadResult, error)
	searchFn    func(query string) []domain.SearchMatch
	historyFn   func(filter string) []*domain.ChangeLogEntry
	recordFn    func(action domain.ChangeAction, details string) *domain.ChangeLogEntry
	revertFn    func(ctx context.Context, id string) (*domain.ChangeLogEntry, error)
	cleanFn     func(ctx context.Context) []domain.MutationResult
	resetCalled bool
}

var _ driving.ContentService = (*mockContentService)(nil)

func (m *mockContentService) Document() domain.ContentDocument {
	if m.documentFn != nil {
		return m.documentFn()
	}
	return domain.DefaultDocument()
}

func (m *mockContentService) Ready() bool {
	if m.readyFn != nil {
		return m.readyFn()
	}
	return true
}

func (m *mockContentService) Status() domain.ContentStatus {
	return domain.ContentStatus{Ready: true, Source: domain.TierCache, Revision: 3, SavedRevision: 1, Dirty: true}
}

func (m *mockContentService) Load(ctx context.Context) (domain.LoadResult, error) {
	return domain.LoadResult{Source: domain.TierDefaults}, nil
}

func (m *mockContentService) Reload(ctx context.Context) (domain.LoadResult, error) {
	if m.reloadFn != nil {
		return m.reloadFn(ctx)
	}
	return domain.LoadResult{Source: domain.TierDefaults}, nil
}

func (m *mockContentService) Apply(ctx context.Context, op domain.Operation) domain.MutationResult {
	if m.applyFn != nil {
		return m.applyFn(ctx, op)
	}
	return domain.MutationResult{Kind: op.Kind, Section: op.Section, Field: op.Field, Applied: true}
}

func (m *mockContentService) SetField(ctx context.Context, field string, value any) domain.MutationResult {
	return m.Apply(ctx, domain.SetField(field, value))
}

func (m *mockContentService) SetNestedField(ctx context.Context, field, subPath string, value any) domain.MutationResult {
	return m.Apply(ctx, domain.SetNestedField(field, subPath, value))
}

func (m *mockContentService) SetArrayItem(ctx context.Context, field string, index int, partial any, hints ...domain.Section) domain.MutationResult {
	return m.Apply(ctx, domain.SetArrayItem(field, index, partial, hints...))
}

func (m *mockContentService) AppendArrayItem(ctx context.Context, field string, item any, hints ...domain.Section) domain.MutationResult {
	return m.Apply(ctx, domain.AppendArrayItem(field, item, hints...))
}

func (m *mockContentService) RemoveArrayItem(ctx context.Context, field string, index int, hints ...domain.Section) domain.MutationResult {
	return m.Apply(ctx, domain.RemoveArrayItem(field, index, hints...))
}

func (m *mockContentService) Save(ctx context.Context) bool {
	if m.saveFn != nil {
		return m.saveFn(ctx)
	}
	return true
}

func (m *mockContentService) LoadSavedChanges(ctx context.Context) bool {
	if m.restoreFn != nil {
		return m.restoreFn(ctx)
	}
	return false
}

func (m *mockContentService) ResetToDefault(ctx context.Context) {
	m.resetCalled = true
}

func (m *mockContentService) CleanImages(ctx context.Context) []domain.MutationResult {
	if m.cleanFn != nil {
		return m.cleanFn(ctx)
	}
	return nil
}

func (m *mockContentService) Search(query string) []domain.SearchMatch {
	if m.searchFn != nil {
		return m.searchFn(query)
	}
	return nil
}

func (m *mockContentService) History(filter string) []*domain.ChangeLogEntry {
	if m.historyFn != nil {
		return m.historyFn(filter)
	}
	return nil
}

func (m *mockContentService) Record(action domain.ChangeAction, details string) *domain.ChangeLogEntry {
	if m.recordFn != nil {
		return m.recordFn(action, details)
	}
	return &domain.ChangeLogEntry{ID: "01J", Action: action, Details: details, Timestamp: time.Now()}
}

func (m *mockContentService) Revert(ctx context.Context, id string) (*domain.ChangeLogEntry, error) {
	if m.revertFn != nil {
		return m.revertFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContentService) Close() {}

type mockEditorService struct {
	session   domain.EditorSession
	handleFn  func(ctx context.Context, trigger domain.EditorTrigger) (domain.EditorSession, error)
	saveFn    func(ctx context.Context) (bool, domain.EditorSession)
	clicks    int
	autoSaves []bool
}

var _ driving.EditorService = (*mockEditorService)(nil)

func (m *mockEditorService) Session() domain.EditorSession {
	return m.session
}

func (m *mockEditorService) Handle(ctx context.Context, trigger domain.EditorTrigger) (domain.EditorSession, error) {
	if m.handleFn != nil {
		return m.handleFn(ctx, trigger)
	}
	return m.session, nil
}

func (m *mockEditorService) LogoClick(ctx context.Context) domain.EditorSession {
	m.clicks++
	return m.session
}

func (m *mockEditorService) SetAutoSave(ctx context.Context, enabled bool) domain.EditorSession {
	m.autoSaves = append(m.autoSaves, enabled)
	m.session.AutoSave = enabled
	return m.session
}

func (m *mockEditorService) SaveAndClose(ctx context.Context) (bool, domain.EditorSession) {
	if m.saveFn != nil {
		return m.saveFn(ctx)
	}
	return true, m.session
}

func (m *mockEditorService) Stop() {}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

// newTestServer creates a server over the given mocks
func newTestServer(content *mockContentService, editor *mockEditorService, cache Pinger) *Server {
	if content == nil {
		content = &mockContentService{}
	}
	if editor == nil {
		editor = &mockEditorService{session: domain.EditorSession{State: domain.EditorClosed}}
	}
	return NewServer(DefaultConfig(), content, editor, cache)
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

// Health endpoints

func TestHandleHealth(t *testing.T) {
	rr := doRequest(newTestServer(nil, nil, nil), "GET", "/health", nil)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var resp StatusResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		cache      Pinger
		wantStatus int
	}{
		{name: "ready without cache", ready: true, wantStatus: http.StatusOK},
		{name: "ready with healthy cache", ready: true, cache: &mockPinger{}, wantStatus: http.StatusOK},
		{name: "not loaded", ready: false, wantStatus: http.StatusServiceUnavailable},
		{name: "cache down", ready: true, cache: &mockPinger{err: errors.New("dial tcp")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &mockContentService{readyFn: func() bool { return tt.ready }}
			rr := doRequest(newTestServer(content, nil, tt.cache), "GET", "/ready", nil)
			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = "1.2.3"
	s := NewServer(cfg, &mockContentService{}, &mockEditorService{}, nil)

	rr := doRequest(s, "GET", "/version", nil)

	var resp VersionResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", resp.Version)
	}
}

func TestHandleOpenAPIAndMetrics(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rr := doRequest(s, "GET", "/api/v1/openapi.json", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !json.Valid(rr.Body.Bytes()) {
		t.Error("expected openapi document to be valid JSON")
	}

	_ = doRequest(s, "GET", "/health", nil)
	rr = doRequest(s, "GET", "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "folio_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

// Content endpoints

func TestHandleGetContent(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rr := doRequest(s, "GET", "/api/v1/content", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	doc, err := domain.ParseDocument(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("response is not a document: %v", err)
	}
	if len(doc) != len(domain.Sections()) {
		t.Errorf("expected %d sections, got %d", len(domain.Sections()), len(doc))
	}

	rr = doRequest(s, "GET", "/api/v1/content?section=hero", nil)
	var hero map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&hero)
	if _, ok := hero["name"]; !ok {
		t.Errorf("expected hero section, got %v", hero)
	}

	rr = doRequest(s, "GET", "/api/v1/content?section=footer", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown section, got %d", rr.Code)
	}
}

func TestHandleContentStatus(t *testing.T) {
	rr := doRequest(newTestServer(nil, nil, nil), "GET", "/api/v1/content/status", nil)

	var status domain.ContentStatus
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !status.Dirty || status.Source != domain.TierCache {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestHandleFieldMutations(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		check      func(t *testing.T, op domain.Operation)
	}{
		{
			name:       "set field with inferred section",
			method:     "PUT",
			path:       "/api/v1/content/fields/name",
			body:       FieldRequest{Value: "Roman"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, op domain.Operation) {
				if op.Kind != domain.OpSetField || op.Field != "name" || op.Section != "" || op.Value != "Roman" {
					t.Errorf("unexpected op %+v", op)
				}
			},
		},
		{
			name:       "set field with explicit section",
			method:     "PUT",
			path:       "/api/v1/content/fields/title",
			body:       FieldRequest{Section: domain.SectionAbout, Value: "About"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, op domain.Operation) {
				if op.Section != domain.SectionAbout {
					t.Errorf("expected section about, got %q", op.Section)
				}
			},
		},
		{
			name:       "set nested field",
			method:     "PUT",
			path:       "/api/v1/content/fields/social/nested",
			body:       FieldRequest{Path: "facebook.url", Value: "https://fb"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, op domain.Operation) {
				if op.Kind != domain.OpSetNestedField || op.SubPath != "facebook.url" {
					t.Errorf("unexpected op %+v", op)
				}
			},
		},
		{
			name:       "array item path requires items segment",
			method:     "PUT",
			path:       "/api/v1/content/fields/works/2",
			body:       FieldRequest{Value: map[string]any{"title": "x"}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "set array item with hints",
			method:     "PUT",
			path:       "/api/v1/content/fields/works/items/2",
			body:       FieldRequest{Value: map[string]any{"title": "x"}, Hints: []domain.Section{domain.SectionPortfolio}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, op domain.Operation) {
				if op.Kind != domain.OpSetArrayItem || op.Index != 2 || len(op.Hints) != 1 {
					t.Errorf("unexpected op %+v", op)
				}
			},
		},
		{
			name:       "append array item",
			method:     "POST",
			path:       "/api/v1/content/fields/videos/items",
			body:       FieldRequest{Value: map[string]any{"id": 7}},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, op domain.Operation) {
				if op.Kind != domain.OpAppendArrayItem || op.Field != "videos" {
					t.Errorf("unexpected op %+v", op)
				}
			},
		},
		{
			name:       "remove array item",
			method:     "DELETE",
			path:       "/api/v1/content/fields/works/items/0?section=portfolio",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, op domain.Operation) {
				if op.Kind != domain.OpRemoveArrayItem || op.Section != domain.SectionPortfolio || op.Index != 0 {
					t.Errorf("unexpected op %+v", op)
				}
			},
		},
		{
			name:       "remove array item with hints",
			method:     "DELETE",
			path:       "/api/v1/content/fields/videos/items/1?hints=videoRepertoire&hints=portfolio",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, op domain.Operation) {
				want := []domain.Section{domain.SectionVideoRepertoire, domain.SectionPortfolio}
				if op.Kind != domain.OpRemoveArrayItem || op.Index != 1 || !reflect.DeepEqual(op.Hints, want) {
					t.Errorf("unexpected op %+v", op)
				}
			},
		},
		{
			name:       "remove array item unknown section",
			method:     "DELETE",
			path:       "/api/v1/content/fields/works/items/0?section=footer",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "nested without path",
			method:     "PUT",
			path:       "/api/v1/content/fields/social/nested",
			body:       FieldRequest{Value: "x"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown section",
			method:     "PUT",
			path:       "/api/v1/content/fields/name",
			body:       FieldRequest{Section: "footer", Value: "x"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-integer index",
			method:     "DELETE",
			path:       "/api/v1/content/fields/works/items/first",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			method:     "PUT",
			path:       "/api/v1/content/fields/name",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Operation
			content := &mockContentService{
				applyFn: func(ctx context.Context, op domain.Operation) domain.MutationResult {
					got = op
					return domain.MutationResult{Kind: op.Kind, Field: op.Field, Applied: true}
				},
			}
			rr := doRequest(newTestServer(content, nil, nil), tt.method, tt.path, tt.body)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestHandleApplyOperation(t *testing.T) {
	content := &mockContentService{
		applyFn: func(ctx context.Context, op domain.Operation) domain.MutationResult {
			if op.Index > 0 {
				return domain.MutationResult{Kind: op.Kind, Field: op.Field, Reason: "index out of range"}
			}
			return domain.MutationResult{Kind: op.Kind, Field: op.Field, Applied: true}
		},
	}
	s := newTestServer(content, nil, nil)

	rr := doRequest(s, "POST", "/api/v1/content/operations", domain.RemoveArrayItem("works", 0).In(domain.SectionPortfolio))
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	rr = doRequest(s, "POST", "/api/v1/content/operations", domain.RemoveArrayItem("works", 9))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rr.Code)
	}
	var result domain.MutationResult
	_ = json.NewDecoder(rr.Body).Decode(&result)
	if result.Applied || result.Reason == "" {
		t.Errorf("expected unapplied result with reason, got %+v", result)
	}

	rr = doRequest(s, "POST", "/api/v1/content/operations", `{"kind":"renameField","field":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown kind, got %d", rr.Code)
	}
}

func TestHandleSave(t *testing.T) {
	tests := []struct {
		name       string
		ok         bool
		wantStatus int
	}{
		{name: "saved", ok: true, wantStatus: http.StatusOK},
		{name: "cache failure", ok: false, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &mockContentService{saveFn: func(ctx context.Context) bool { return tt.ok }}
			rr := doRequest(newTestServer(content, nil, nil), "POST", "/api/v1/content/save", nil)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			var resp SaveResponse
			_ = json.NewDecoder(rr.Body).Decode(&resp)
			if resp.Saved != tt.ok {
				t.Errorf("expected saved=%v, got %v", tt.ok, resp.Saved)
			}
		})
	}
}

func TestHandleReloadResetRestore(t *testing.T) {
	content := &mockContentService{
		reloadFn: func(ctx context.Context) (domain.LoadResult, error) {
			return domain.LoadResult{Source: domain.TierBundle, Attempts: []domain.TierAttempt{{Tier: domain.TierRemote, Error: "refused"}}}, nil
		},
	}
	s := newTestServer(content, nil, nil)

	rr := doRequest(s, "POST", "/api/v1/content/reload", nil)
	var result domain.LoadResult
	_ = json.NewDecoder(rr.Body).Decode(&result)
	if result.Source != domain.TierBundle || len(result.Attempts) != 1 {
		t.Errorf("unexpected load result %+v", result)
	}

	rr = doRequest(s, "POST", "/api/v1/content/reset", nil)
	if rr.Code != http.StatusOK || !content.resetCalled {
		t.Errorf("expected reset to be called, status %d", rr.Code)
	}

	rr = doRequest(s, "POST", "/api/v1/content/restore", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404 with nothing cached, got %d", rr.Code)
	}

	content.restoreFn = func(ctx context.Context) bool { return true }
	rr = doRequest(s, "POST", "/api/v1/content/restore", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleReloadCanceled(t *testing.T) {
	content := &mockContentService{
		reloadFn: func(ctx context.Context) (domain.LoadResult, error) {
			return domain.LoadResult{}, context.Canceled
		},
	}
	s := newTestServer(content, nil, nil)

	rr := doRequest(s, "POST", "/api/v1/content/reload", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestHandleCleanImages(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rr := doRequest(s, "POST", "/api/v1/content/clean-images", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", rr.Body.String())
	}
}

func TestHandleSearch(t *testing.T) {
	content := &mockContentService{
		searchFn: func(query string) []domain.SearchMatch {
			return []domain.SearchMatch{{Section: domain.SectionPortfolio, Path: "works[0].title", Value: "Hamlet " + query}}
		},
	}
	s := newTestServer(content, nil, nil)

	rr := doRequest(s, "GET", "/api/v1/content/search?q=lear", nil)
	var matches []domain.SearchMatch
	_ = json.NewDecoder(rr.Body).Decode(&matches)
	if len(matches) != 1 || matches[0].Path != "works[0].title" {
		t.Errorf("unexpected matches %+v", matches)
	}

	rr = doRequest(s, "GET", "/api/v1/content/search", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without q, got %d", rr.Code)
	}
}

// Change log endpoints

func TestHandleChanges(t *testing.T) {
	var gotFilter string
	content := &mockContentService{
		historyFn: func(filter string) []*domain.ChangeLogEntry {
			gotFilter = filter
			return []*domain.ChangeLogEntry{{ID: "b", Action: domain.ActionUpload}, {ID: "a", Action: domain.ActionImageUpload}}
		},
	}
	s := newTestServer(content, nil, nil)

	rr := doRequest(s, "GET", "/api/v1/changes?action=upload", nil)
	var entries []domain.ChangeLogEntry
	_ = json.NewDecoder(rr.Body).Decode(&entries)
	if gotFilter != "upload" || len(entries) != 2 {
		t.Errorf("unexpected filter %q or entries %+v", gotFilter, entries)
	}

	rr = doRequest(s, "POST", "/api/v1/changes", RecordRequest{Action: domain.ActionImageUpload, Details: "profile.jpg"})
	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}

	rr = doRequest(s, "POST", "/api/v1/changes", RecordRequest{Action: "rename", Details: "x"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown action, got %d", rr.Code)
	}
}

func TestHandleRevertChange(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "reverted", wantStatus: http.StatusOK},
		{name: "unknown id", err: fmt.Errorf("change x: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "not revertible", err: fmt.Errorf("change x: %w", domain.ErrInvalidInput), wantStatus: http.StatusConflict},
		{name: "other", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			content := &mockContentService{
				revertFn: func(ctx context.Context, id string) (*domain.ChangeLogEntry, error) {
					gotID = id
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.ChangeLogEntry{ID: "new", Action: domain.ActionRevert}, nil
				},
			}
			rr := doRequest(newTestServer(content, nil, nil), "POST", "/api/v1/changes/01HXYZ/revert", nil)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if gotID != "01HXYZ" {
				t.Errorf("expected id 01HXYZ, got %q", gotID)
			}
		})
	}
}

// Editor endpoints

func TestHandleEditor(t *testing.T) {
	editor := &mockEditorService{
		session: domain.EditorSession{State: domain.EditorClosed},
		handleFn: func(ctx context.Context, trigger domain.EditorTrigger) (domain.EditorSession, error) {
			if !trigger.Valid() {
				return domain.EditorSession{}, domain.ErrInvalidInput
			}
			return domain.EditorSession{State: domain.EditorOpen, OpenedBy: trigger}, nil
		},
	}
	s := newTestServer(nil, editor, nil)

	rr := doRequest(s, "GET", "/api/v1/editor", nil)
	var session domain.EditorSession
	_ = json.NewDecoder(rr.Body).Decode(&session)
	if session.State != domain.EditorClosed {
		t.Errorf("expected closed session, got %+v", session)
	}

	rr = doRequest(s, "POST", "/api/v1/editor/triggers", TriggerRequest{Trigger: domain.TriggerKeyCombo})
	_ = json.NewDecoder(rr.Body).Decode(&session)
	if rr.Code != http.StatusOK || session.OpenedBy != domain.TriggerKeyCombo {
		t.Errorf("unexpected trigger response %d %+v", rr.Code, session)
	}

	rr = doRequest(s, "POST", "/api/v1/editor/triggers", TriggerRequest{Trigger: "swipe"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown trigger, got %d", rr.Code)
	}

	for i := 0; i < 3; i++ {
		doRequest(s, "POST", "/api/v1/editor/logo-click", nil)
	}
	if editor.clicks != 3 {
		t.Errorf("expected 3 clicks, got %d", editor.clicks)
	}

	rr = doRequest(s, "PUT", "/api/v1/editor/autosave", AutoSaveRequest{Enabled: false})
	_ = json.NewDecoder(rr.Body).Decode(&session)
	if len(editor.autoSaves) != 1 || session.AutoSave {
		t.Errorf("expected autosave disabled, got %v", editor.autoSaves)
	}
}

func TestHandleEditorSave(t *testing.T) {
	editor := &mockEditorService{
		saveFn: func(ctx context.Context) (bool, domain.EditorSession) {
			return false, domain.EditorSession{State: domain.EditorOpen}
		},
	}
	rr := doRequest(newTestServer(nil, editor, nil), "POST", "/api/v1/editor/save", nil)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
	var resp EditorSaveResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Saved || resp.Session.State != domain.EditorOpen {
		t.Errorf("unexpected response %+v", resp)
	}
}
