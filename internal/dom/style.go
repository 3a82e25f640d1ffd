package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type declaration struct {
	prop  string
	value string
}

func parseStyle(raw string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(raw, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: value})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

// Style reads one inline style property of the first element in sel.
func Style(sel *goquery.Selection, prop string) string {
	raw, _ := sel.First().Attr("style")
	prop = strings.ToLower(prop)
	for _, d := range parseStyle(raw) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets one inline style property on every element in sel. An empty
// value removes the property.
func SetStyle(sel *goquery.Selection, prop, value string) {
	SetStyles(sel, prop, value)
}

// SetStyles applies prop/value pairs in order on every element in sel.
func SetStyles(sel *goquery.Selection, pairs ...string) {
	sel.Each(func(_ int, el *goquery.Selection) {
		raw, _ := el.Attr("style")
		decls := parseStyle(raw)
		for i := 0; i+1 < len(pairs); i += 2 {
			decls = setDeclaration(decls, strings.ToLower(pairs[i]), pairs[i+1])
		}
		if formatted := formatStyle(decls); formatted != "" {
			el.SetAttr("style", formatted)
		} else {
			el.RemoveAttr("style")
		}
	})
}

func setDeclaration(decls []declaration, prop, value string) []declaration {
	for i, d := range decls {
		if d.prop != prop {
			continue
		}
		if value == "" {
			return append(decls[:i], decls[i+1:]...)
		}
		decls[i].value = value
		return decls
	}
	if value == "" {
		return decls
	}
	return append(decls, declaration{prop: prop, value: value})
}

// Visible reports whether the first element of sel is not display:none.
func Visible(sel *goquery.Selection) bool {
	return sel.Length() > 0 && Style(sel, "display") != "none"
}
