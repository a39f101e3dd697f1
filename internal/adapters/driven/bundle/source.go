// Package bundle reads the static content document shipped with the site build.
package bundle

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.ContentSource = (*HTTPSource)(nil)
	_ driven.ContentSource = (*FileSource)(nil)
)

const maxBundleBytes = 32 << 20

// New returns an HTTPSource for http(s) locations and a FileSource otherwise.
func New(location string) driven.ContentSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, 10*time.Second)
	}
	return NewFileSource(location)
}

// HTTPSource fetches the bundled document from a static URL (e.g. /content.json)
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates an HTTPSource
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the tier name
func (s *HTTPSource) Name() string {
	return domain.TierBundle
}

// Fetch downloads the bundled document
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned %s", domain.ErrSourceUnavailable, s.url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read bundle: %v", domain.ErrSourceUnavailable, err)
	}
	return data, nil
}

// FileSource reads the bundled document from a filesystem
type FileSource struct {
	fsys fs.FS
	name string
}

// NewFileSource reads path from the local filesystem
func NewFileSource(path string) *FileSource {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileSource{fsys: os.DirFS(filepath.Dir(path)), name: filepath.Base(path)}
}

// NewFSSource reads name from fsys (an embed.FS or fstest.MapFS, for example)
func NewFSSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{fsys: fsys, name: name}
}

// Name returns the tier name
func (s *FileSource) Name() string {
	return domain.TierBundle
}

// Fetch reads the file
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	return data, nil
}
