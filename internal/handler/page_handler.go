package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/dom"
	"github.com/skilllab/internal/locale"
	"github.com/skilllab/internal/page"
	"github.com/skilllab/web"
)

const aboutBodySelector = "#about-body"

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()

	errFragmentUnavailable = errors.New("fragment unavailable")
)

// ShowHome 渲染首页
func (a *API) ShowHome(c *gin.Context) {
	a.renderPage(c, catalog.PageHome, "", nil)
}

// ShowGames 渲染游戏列表页
func (a *API) ShowGames(c *gin.Context) {
	a.renderPage(c, catalog.PageGames, "", nil)
}

// ShowGame 渲染选中某个游戏的游戏页，未知 id 时不显示任何游戏面板。
func (a *API) ShowGame(c *gin.Context) {
	a.renderPage(c, catalog.PageGames, c.Param("id"), nil)
}

// ShowTools 渲染工具列表页
func (a *API) ShowTools(c *gin.Context) {
	a.renderPage(c, catalog.PageTools, "", nil)
}

// ShowTool 渲染选中某个工具的工具页
func (a *API) ShowTool(c *gin.Context) {
	a.renderPage(c, catalog.PageTools, c.Param("id"), nil)
}

// ShowAbout 从 markdown 源渲染页脚链接的说明页。
func (a *API) ShowAbout(c *gin.Context) {
	name := c.Param("page")
	if name == "" {
		name = "about"
	}
	if !slices.Contains(catalog.AboutPages, name) {
		lang := a.requestLocale(c).preference.Language
		c.String(http.StatusNotFound, locale.Pick(lang, "page not found", "페이지를 찾을 수 없습니다"))
		return
	}

	a.renderPage(c, catalog.PageAbout, "", func(v *page.View) {
		content, err := web.Content(v.Language().String(), name)
		if err != nil {
			c.Error(err)
			return
		}
		body, err := renderMarkdown(content)
		if err != nil {
			c.Error(fmt.Errorf("render %s: %w", name, err))
			return
		}
		v.Inspect(func(doc *dom.Document) {
			doc.Find(aboutBodySelector).SetHtml(body)
		})
	})
}

func (a *API) renderPage(c *gin.Context, pageType catalog.PageType, id string, decorate func(*page.View)) {
	shell, err := web.Shell(string(pageType))
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}

	loc := a.requestLocale(c)
	v, err := page.New(page.Config{
		Page:      pageType,
		ID:        id,
		Path:      c.Request.URL.Path,
		Shell:     shell,
		Fragments: a.fragments,
		Table:     a.table,
		Store:     loc.store,
		Signal:    func() string { return c.GetHeader("Accept-Language") },
		Width:     viewportWidth(c, a.defaultWidth),
		Debounce:  a.debounce,
		Games:     a.games,
		Tools:     a.tools,
		Logger:    a.logger,
	})
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	defer v.Close()

	for selector, ok := range v.Init(c.Request.Context()) {
		if !ok {
			c.Error(fmt.Errorf("%w: %s", errFragmentUnavailable, selector))
		}
	}
	if decorate != nil {
		decorate(v)
	}

	markup, err := v.HTML()
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

func renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert(content, &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}
