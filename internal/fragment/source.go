package fragment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

var (
	// ErrFragmentStatus marks a non-2xx fragment response.
	ErrFragmentStatus = errors.New("fragment request failed")
	// ErrFragmentNotFound marks a fragment that does not exist at its path.
	ErrFragmentNotFound = errors.New("fragment not found")
	// ErrFragmentTooLarge marks a response body over maxFragmentBytes.
	ErrFragmentTooLarge = errors.New("fragment too large")
)

const maxFragmentBytes = 1 << 20

// Source fetches raw fragment markup by path.
type Source interface {
	Fetch(ctx context.Context, path string) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource fetches fragments with GET requests relative to a base URL.
type HTTPSource struct {
	baseURL string
	client  httpDoer
}

// NewHTTPSource returns a source rooted at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// WithClient swaps the HTTP client, mostly for tests.
func (s *HTTPSource) WithClient(client httpDoer) *HTTPSource {
	s.client = client
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context, fragmentPath string) (string, error) {
	url := s.baseURL + "/" + strings.TrimLeft(fragmentPath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build fragment request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch fragment %s: %w", fragmentPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %w: %s", ErrFragmentStatus, ErrFragmentNotFound, fragmentPath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned %d", ErrFragmentStatus, fragmentPath, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", fragmentPath, err)
	}
	if len(body) > maxFragmentBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFragmentTooLarge, fragmentPath, maxFragmentBytes)
	}
	return string(body), nil
}

// FSSource reads fragments from a file system, e.g. the embedded web assets.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, fragmentPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := strings.TrimLeft(path.Clean("/"+fragmentPath), "/")
	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w: %s", ErrFragmentStatus, ErrFragmentNotFound, fragmentPath)
		}
		return "", fmt.Errorf("read fragment %s: %w", fragmentPath, err)
	}
	return string(data), nil
}

// VariantPath returns the language-specific path for a fragment, e.g.
// shared/header.html -> shared/header-en.html. The default language uses the
// base path.
func VariantPath(fragmentPath, lang string) string {
	if lang == "" {
		return fragmentPath
	}
	ext := path.Ext(fragmentPath)
	return strings.TrimSuffix(fragmentPath, ext) + "-" + lang + ext
}
