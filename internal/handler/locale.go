package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skilllab/internal/locale"
)

const (
	localeContextKey     = "__request_locale"
	languageCookieName   = locale.PreferenceKey
	languageCookieMaxAge = 365 * 24 * 60 * 60
	visitorCookieName    = "sl_visitor_id"
	visitorCookieMaxAge  = 365 * 24 * 60 * 60

	viewportHintHeaders = "Sec-CH-Viewport-Width, Viewport-Width"
)

// requestLocale is the per-request language state shared by the handlers.
type requestLocale struct {
	store      locale.Store
	resolver   *locale.Resolver
	preference locale.Preference
}

// LocaleMiddleware resolves the request language and sets headers for
// downstream caching. A ?lang= override is persisted like an explicit choice.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := a.requestLocale(c)
		if loc.preference.HTMLLang != "" {
			c.Header("Content-Language", loc.preference.HTMLLang)
		}
		c.Header("Accept-CH", viewportHintHeaders)
		appendVaryHeader(c, "Accept-Language", "Cookie", "Sec-CH-Viewport-Width", "Viewport-Width")
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) *requestLocale {
	if cached, exists := c.Get(localeContextKey); exists {
		if loc, ok := cached.(*requestLocale); ok {
			return loc
		}
	}

	store := a.preferenceStore(c)
	resolver := locale.NewResolver(store,
		locale.WithSignal(func() string { return c.GetHeader("Accept-Language") }),
		locale.WithLogger(a.logger),
	)
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" && override != resolver.Context().Current() {
		if err := resolver.SetLanguage(override.String()); err != nil {
			c.Error(err)
		}
	}

	loc := &requestLocale{
		store:      store,
		resolver:   resolver,
		preference: locale.PreferenceForLanguage(resolver.Context().Current()),
	}
	c.Set(localeContextKey, loc)
	return loc
}

// preferenceStore reads the cookie first, then the session, then the visitor
// row, and writes the choice to all of them.
func (a *API) preferenceStore(c *gin.Context) locale.Store {
	chain := locale.ChainStore{cookieStore{c: c}}
	if _, ok := c.Get(sessions.DefaultKey); ok {
		chain = append(chain, locale.NewSessionStore(sessions.Default(c)))
	}
	if a.prefs != nil {
		chain = append(chain, a.prefs.Store(a.ensureVisitorID(c)))
	}
	return chain
}

// cookieStore keeps the preference in the userLanguage cookie.
type cookieStore struct {
	c *gin.Context
}

func (s cookieStore) Load() (string, error) {
	if written := s.c.GetString(languageCookieName); written != "" {
		return written, nil
	}
	value, err := s.c.Cookie(languageCookieName)
	if err != nil {
		return "", nil
	}
	return locale.NormalizeLanguage(value).String(), nil
}

func (s cookieStore) Save(value string) error {
	http.SetCookie(s.c.Writer, &http.Cookie{
		Name:     languageCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(s.c),
		MaxAge:   languageCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
	s.c.Set(languageCookieName, value)
	return nil
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}
	if cached := c.GetString(visitorCookieName); cached != "" {
		return cached
	}

	visitorID := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(c),
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(visitorCookieName, visitorID)
	return visitorID
}

func isSecure(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	return c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Get("Vary")
	seen := make(map[string]struct{})
	order := make([]string, 0, len(headers))
	for _, token := range append(strings.Split(existing, ","), headers...) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		order = append(order, trimmed)
	}
	if len(order) > 0 {
		c.Header("Vary", strings.Join(order, ", "))
	}
}
