// Package dom is the headless document model pages are composed in. It wraps
// a goquery document with inline-style helpers and a delegated event registry.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page plus its listeners.
type Document struct {
	doc    *goquery.Document
	events *Events
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{doc: doc, events: newEvents()}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Find runs a CSS selector against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// First returns the first match of selector and whether one exists.
func (d *Document) First(selector string) (*goquery.Selection, bool) {
	sel := d.doc.Find(selector).First()
	return sel, sel.Length() > 0
}

func (d *Document) Exists(selector string) bool {
	return d.doc.Find(selector).Length() > 0
}

func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

func (d *Document) Body() *goquery.Selection {
	return d.doc.Find("body").First()
}

func (d *Document) Head() *goquery.Selection {
	return d.doc.Find("head").First()
}

// Events returns the listener registry bound to this document.
func (d *Document) Events() *Events {
	return d.events
}

// HTML renders the whole document, doctype included.
func (d *Document) HTML() (string, error) {
	out, err := goquery.OuterHtml(d.doc.Selection)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return out, nil
}

// Render writes the document to w.
func (d *Document) Render(w io.Writer) error {
	out, err := d.HTML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// ReplaceInner swaps the inner markup of the first element matching selector.
// It reports false, leaving the document untouched, when nothing matches.
func (d *Document) ReplaceInner(selector, markup string) bool {
	target, ok := d.First(selector)
	if !ok {
		return false
	}
	target.SetHtml(markup)
	return true
}

// RemoveAll deletes every element matching selector and returns how many went.
func (d *Document) RemoveAll(selector string) int {
	sel := d.doc.Find(selector)
	n := sel.Length()
	sel.Remove()
	return n
}

// AppendToBody adds markup at the end of <body>.
func (d *Document) AppendToBody(markup string) {
	d.Body().AppendHtml(markup)
}
