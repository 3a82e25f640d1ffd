package i18n

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/skilllab/internal/dom"
	"github.com/skilllab/internal/locale"
)

const (
	KeyAttr            = "data-i18n"
	PlaceholderKeyAttr = "data-i18n-placeholder"

	KeyPageTitle       = "pageTitle"
	KeyPageDescription = "pageDescription"
	KeyPageKeywords    = "pageKeywords"
)

// Applicator writes dictionary strings into tagged document elements.
type Applicator struct {
	table  *Table
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewApplicator returns an applicator over table.
func NewApplicator(table *Table, logger *slog.Logger) *Applicator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applicator{table: table, policy: richTextPolicy(), logger: logger}
}

// richTextPolicy allows the inline tags rich dictionary entries use.
func richTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("br", "strong", "em", "b", "i", "small", "span")
	p.AllowAttrs("class").OnElements("span")
	return p
}

// Table exposes the dictionaries the applicator reads.
func (a *Applicator) Table() *Table {
	return a.table
}

// Apply translates every [data-i18n] element and the document metadata into
// code. Elements whose key is missing keep their current content. It returns
// the number of elements changed.
func (a *Applicator) Apply(doc *dom.Document, code locale.Code) int {
	if doc == nil {
		return 0
	}
	applied := 0
	missing := 0

	doc.Find("[" + KeyAttr + "]").Each(func(_ int, el *goquery.Selection) {
		key, _ := el.Attr(KeyAttr)
		value, ok := a.table.Lookup(code, key)
		if !ok {
			missing++
			return
		}
		if IsRichKey(key) {
			el.SetHtml(a.policy.Sanitize(value))
		} else {
			el.SetText(value)
		}
		applied++
	})

	doc.Find("[" + PlaceholderKeyAttr + "]").Each(func(_ int, el *goquery.Selection) {
		key, _ := el.Attr(PlaceholderKeyAttr)
		if value, ok := a.table.Lookup(code, key); ok {
			el.SetAttr("placeholder", value)
			applied++
		}
	})

	a.applyMetadata(doc, code)

	if missing > 0 {
		a.logger.Debug("translation keys missing", "language", code, "count", missing)
	}
	return applied
}

func (a *Applicator) applyMetadata(doc *dom.Document, code locale.Code) {
	doc.Find("html").SetAttr("lang", locale.PreferenceForLanguage(code).HTMLLang)

	if title, ok := a.table.Lookup(code, KeyPageTitle); ok {
		doc.Find("head title").SetText(title)
		doc.Find(`meta[property="og:title"]`).SetAttr("content", title)
	}
	if description, ok := a.table.Lookup(code, KeyPageDescription); ok {
		doc.Find(`meta[name="description"]`).SetAttr("content", description)
		doc.Find(`meta[property="og:description"]`).SetAttr("content", description)
	}
	if keywords, ok := a.table.Lookup(code, KeyPageKeywords); ok {
		doc.Find(`meta[name="keywords"]`).SetAttr("content", keywords)
	}
}
