package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilllab/internal/db"
	"github.com/skilllab/internal/dom"
	"github.com/skilllab/internal/fragment"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/service"
	"github.com/skilllab/web"
)

func setupTestAPI(t *testing.T) (*API, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open("file:"+t.Name()+"?mode=memory&cache=shared", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	api := NewAPI(gdb, Options{
		Table:     i18n.MustLoad(),
		Fragments: fragment.NewFSSource(web.Assets()),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Faker:     gofakeit.New(7),
	})

	r := gin.New()
	r.Use(sessions.Sessions("skilllab_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(api.LocaleMiddleware())
	r.GET("/", api.ShowHome)
	r.GET("/games", api.ShowGames)
	r.GET("/games/:id", api.ShowGame)
	r.GET("/tools", api.ShowTools)
	r.GET("/tools/:id", api.ShowTool)
	r.GET("/about/:page", api.ShowAbout)
	r.POST("/api/language", api.SetLanguage)
	r.GET("/healthz", api.HealthCheck)
	return api, r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestShowGameSelectsPanel(t *testing.T) {
	_, r := setupTestAPI(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/games/fps-aim", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ko", w.Header().Get("Content-Language"))

	doc := parseBody(t, w)
	assert.Equal(t, "block", dom.Style(doc.Find("#fpsAimGame"), "display"))
	assert.Equal(t, "none", dom.Style(doc.Find("#memoryGame"), "display"))
	assert.True(t, doc.Find(`.game-item[data-game="fps-aim"]`).HasClass("active"))
	assert.True(t, doc.Find("#navGames").HasClass("active"))
	assert.NotEmpty(t, strings.TrimSpace(doc.Find("#fpsAimGame [data-output]").Text()))
}

func TestShowGameUnknownIDStillRenders(t *testing.T) {
	_, r := setupTestAPI(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/games/chess", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseBody(t, w)
	assert.Zero(t, doc.Find(".game-item.active").Length())
	assert.Equal(t, "none", dom.Style(doc.Find("#fpsAimGame"), "display"))
}

func TestAcceptLanguagePicksEnglish(t *testing.T) {
	_, r := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,ko;q=0.5")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	doc := parseBody(t, w)
	assert.Equal(t, "Home", doc.Find("#navHome").Text())
	assert.True(t, doc.Find(`.lang-btn[data-lang="en"]`).HasClass("active"))
	assert.Nil(t, findCookie(w, languageCookieName), "signal-derived language must not be persisted")
}

func TestLangQueryPersistsChoice(t *testing.T) {
	_, r := setupTestAPI(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/tools?lang=en", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	langCookie := findCookie(w, languageCookieName)
	require.NotNil(t, langCookie)
	assert.Equal(t, "en", langCookie.Value)
	assert.Equal(t, http.SameSiteLaxMode, langCookie.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ko-KR")
	req.AddCookie(langCookie)
	w = serve(r, req)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
	assert.Equal(t, "Home", parseBody(t, w).Find("#navHome").Text())
}

func TestSetLanguagePersistsForVisitor(t *testing.T) {
	api, r := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/language", bytes.NewBufferString(`{"lang":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "en", payload["language"])

	visitor := findCookie(w, visitorCookieName)
	require.NotNil(t, visitor)
	stored, err := service.NewPreferenceService(api.DB()).Language(visitor.Value)
	require.NoError(t, err)
	assert.Equal(t, "en", stored)

	// The visitor row alone restores the choice.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(visitor)
	w = serve(r, req)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
}

func TestSetLanguageRejectsUnsupported(t *testing.T) {
	_, r := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/language", bytes.NewBufferString(`{"lang":"fr"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported language")
	assert.Nil(t, findCookie(w, languageCookieName))

	req = httptest.NewRequest(http.MethodPost, "/api/language", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)
}

func TestViewportWidthDrivesLayout(t *testing.T) {
	_, r := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/tools/keywords", nil)
	req.Header.Set("Sec-CH-Viewport-Width", "600")
	doc := parseBody(t, serve(r, req))
	assert.Equal(t, 1, doc.Find(".sidebar-toggle").Length())
	assert.Equal(t, "column", dom.Style(doc.Find(".tools-container"), "flex-direction"))

	doc = parseBody(t, serve(r, httptest.NewRequest(http.MethodGet, "/tools/keywords?w=1300", nil)))
	assert.Zero(t, doc.Find(".sidebar-toggle").Length())
	assert.Equal(t, "row", dom.Style(doc.Find(".tools-container"), "flex-direction"))
}

func TestLocaleMiddlewareHeaders(t *testing.T) {
	_, r := setupTestAPI(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, viewportHintHeaders, w.Header().Get("Accept-CH"))
	vary := w.Header().Get("Vary")
	for _, header := range []string{"Accept-Language", "Cookie", "Sec-CH-Viewport-Width"} {
		assert.Contains(t, vary, header)
	}
}

func TestShowAboutRendersMarkdown(t *testing.T) {
	_, r := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/about/privacy?lang=en", nil)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseBody(t, w)
	assert.Equal(t, "Privacy Policy", doc.Find("#about-body h1").Text())
	assert.True(t, doc.Find("#navAbout").HasClass("active"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/about/secrets?lang=en", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "page not found", w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	_, r := setupTestAPI(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	gin.SetMode(gin.TestMode)
	w = httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	NewAPI(nil, Options{}).HealthCheck(c)
	assert.Contains(t, w.Body.String(), `"database":"disabled"`)
}

func TestViewportWidth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{name: "default", want: 1280},
		{name: "client hint", header: "900", want: 900},
		{name: "query", query: "?w=480", want: 480},
		{name: "invalid hint falls through", header: "wide", query: "?w=700", want: 700},
		{name: "negative", query: "?w=-5", want: 1280},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.header != "" {
				c.Request.Header.Set("Sec-CH-Viewport-Width", tt.header)
			}
			assert.Equal(t, tt.want, viewportWidth(c, 1280))
		})
	}
}
