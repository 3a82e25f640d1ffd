package fragment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/skilllab/internal/dom"
	"github.com/skilllab/internal/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shell = `<!DOCTYPE html><html><head></head><body>
<header id="site-header"><span>loading</span></header>
<main></main>
<footer id="site-footer"><span>loading</span></footer>
</body></html>`

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(shell)
	require.NoError(t, err)
	return doc
}

func fragmentServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/shared/header.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<nav class="nav"><a class="nav-item" href="/">Home</a></nav>`))
	})
	mux.HandleFunc("/shared/header-en.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<nav class="nav nav-en"></nav>`))
	})
	mux.HandleFunc("/shared/broken.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/shared/footer-en.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/shared/footer.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p class="copy">base</p>`))
	})
	mux.HandleFunc("/shared/huge.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1<<20+1)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadFooter404KeepsHeader(t *testing.T) {
	srv := fragmentServer(t)
	loader := fragment.NewLoader(fragment.NewHTTPSource(srv.URL, time.Second))
	doc := newDoc(t)

	results := loader.LoadAll(context.Background(), doc,
		fragment.Mount{Selector: "#site-header", Path: "/shared/header.html"},
		fragment.Mount{Selector: "#site-footer", Path: "/shared/missing.html"},
	)

	assert.True(t, results["#site-header"])
	assert.False(t, results["#site-footer"])
	assert.False(t, results.OK())
	assert.Equal(t, 1, doc.Count("#site-header .nav"))
	assert.Equal(t, "loading", doc.Find("#site-footer span").Text())
}

func TestLoadAllDefaultLockerMountsEverything(t *testing.T) {
	fsys := fstest.MapFS{
		"shared/header.html": {Data: []byte(`<nav class="nav"></nav>`)},
		"shared/footer.html": {Data: []byte(`<p class="copy">c</p>`)},
	}
	loader := fragment.NewLoader(fragment.NewFSSource(fsys))

	for i := 0; i < 50; i++ {
		doc := newDoc(t)
		results := loader.LoadAll(context.Background(), doc,
			fragment.Mount{Selector: "#site-header", Path: "shared/header.html"},
			fragment.Mount{Selector: "#site-footer", Path: "shared/footer.html"},
		)
		require.True(t, results.OK(), "%v", results)
		assert.Equal(t, 1, doc.Count("#site-header .nav"))
		assert.Equal(t, 1, doc.Count("#site-footer .copy"))
	}
}

func TestFetchRejectsOversizedFragment(t *testing.T) {
	srv := fragmentServer(t)
	source := fragment.NewHTTPSource(srv.URL, time.Second)

	_, err := source.Fetch(context.Background(), "/shared/huge.html")
	assert.ErrorIs(t, err, fragment.ErrFragmentTooLarge)

	doc := newDoc(t)
	assert.False(t, fragment.NewLoader(source).Load(context.Background(), doc, "#site-header", "/shared/huge.html"))
	assert.Equal(t, "loading", doc.Find("#site-header span").Text())
}

func TestLoadNonSuccessStatus(t *testing.T) {
	srv := fragmentServer(t)
	source := fragment.NewHTTPSource(srv.URL, time.Second)

	_, err := source.Fetch(context.Background(), "/shared/broken.html")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fragment.ErrFragmentStatus))
	assert.False(t, errors.Is(err, fragment.ErrFragmentNotFound))

	loader := fragment.NewLoader(source)
	doc := newDoc(t)
	assert.NotPanics(t, func() {
		assert.False(t, loader.Load(context.Background(), doc, "#site-header", "/shared/broken.html"))
	})
	assert.Equal(t, "loading", doc.Find("#site-header span").Text())
}

func TestLoadNetworkFailure(t *testing.T) {
	srv := fragmentServer(t)
	url := srv.URL
	srv.Close()

	loader := fragment.NewLoader(fragment.NewHTTPSource(url, 200*time.Millisecond))
	doc := newDoc(t)
	assert.False(t, loader.Load(context.Background(), doc, "#site-header", "/shared/header.html"))
	assert.Equal(t, "loading", doc.Find("#site-header span").Text())
}

func TestLoadMissingMountPoint(t *testing.T) {
	srv := fragmentServer(t)
	loader := fragment.NewLoader(fragment.NewHTTPSource(srv.URL, time.Second))
	doc := newDoc(t)

	assert.False(t, loader.Load(context.Background(), doc, "#game-sidebar", "/shared/header.html"))
}

func TestLoadLanguageVariant(t *testing.T) {
	srv := fragmentServer(t)
	loader := fragment.NewLoader(fragment.NewHTTPSource(srv.URL, time.Second))

	doc := newDoc(t)
	require.True(t, loader.LoadMount(context.Background(), doc, fragment.Mount{Selector: "#site-header", Path: "/shared/header.html", Lang: "en"}))
	assert.Equal(t, 1, doc.Count(".nav-en"))

	fsys := fstest.MapFS{"shared/footer.html": {Data: []byte(`<p class="copy">c</p>`)}}
	fsLoader := fragment.NewLoader(fragment.NewFSSource(fsys))
	require.True(t, fsLoader.LoadMount(context.Background(), doc, fragment.Mount{Selector: "#site-footer", Path: "/shared/footer.html", Lang: "en"}))
	assert.Equal(t, 1, doc.Count("#site-footer .copy"))
}

func TestLoadVariantErrorFallsBackToBase(t *testing.T) {
	srv := fragmentServer(t)
	loader := fragment.NewLoader(fragment.NewHTTPSource(srv.URL, time.Second))
	doc := newDoc(t)

	require.True(t, loader.LoadMount(context.Background(), doc, fragment.Mount{Selector: "#site-footer", Path: "/shared/footer.html", Lang: "en"}))
	assert.Equal(t, "base", doc.Find("#site-footer .copy").Text())
}

type gatedSource struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls int
}

func (s *gatedSource) Fetch(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	s.calls++
	gate := s.gates[path]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return `<p class="from">` + path + `</p>`, nil
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	source := &gatedSource{gates: map[string]chan struct{}{"/old.html": slow}}
	loader := fragment.NewLoader(source)
	doc := newDoc(t)

	done := make(chan bool)
	go func() {
		done <- loader.Load(context.Background(), doc, "#site-header", "/old.html")
	}()

	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.calls == 1
	}, time.Second, 5*time.Millisecond)

	require.True(t, loader.Load(context.Background(), doc, "#site-header", "/new.html"))
	close(slow)

	assert.False(t, <-done)
	assert.Equal(t, "/new.html", doc.Find("#site-header .from").Text())
}

func TestVariantPath(t *testing.T) {
	assert.Equal(t, "/shared/header-en.html", fragment.VariantPath("/shared/header.html", "en"))
	assert.Equal(t, "/shared/header.html", fragment.VariantPath("/shared/header.html", ""))
}
