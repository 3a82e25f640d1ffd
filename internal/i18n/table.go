// Package i18n holds the static ko/en dictionaries and applies them to documents.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/skilllab/internal/locale"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Table maps each language to its own localizer. Every language has a
// separate bundle so a missing key never falls back to another language.
type Table struct {
	localizers map[locale.Code]*i18n.Localizer
	keys       map[locale.Code][]string
}

// Load reads the embedded dictionaries.
func Load() (*Table, error) {
	return LoadFS(localeFS, "locales")
}

// MustLoad is Load for package initialisation paths.
func MustLoad() *Table {
	table, err := Load()
	if err != nil {
		panic(err)
	}
	return table
}

// LoadFS reads <dir>/<code>.yaml for every supported language from fsys.
func LoadFS(fsys fs.FS, dir string) (*Table, error) {
	table := &Table{
		localizers: make(map[locale.Code]*i18n.Localizer),
		keys:       make(map[locale.Code][]string),
	}
	for _, code := range locale.Supported() {
		data, err := fs.ReadFile(fsys, path.Join(dir, code.String()+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read %s dictionary: %w", code, err)
		}
		if err := table.add(code, data); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// FromMaps builds a table from in-memory dictionaries.
func FromMaps(dicts map[locale.Code]map[string]string) (*Table, error) {
	table := &Table{
		localizers: make(map[locale.Code]*i18n.Localizer),
		keys:       make(map[locale.Code][]string),
	}
	for code, dict := range dicts {
		data, err := yaml.Marshal(dict)
		if err != nil {
			return nil, fmt.Errorf("encode %s dictionary: %w", code, err)
		}
		if err := table.add(code, data); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (t *Table) add(code locale.Code, data []byte) error {
	var dict map[string]string
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return fmt.Errorf("decode %s dictionary: %w", code, err)
	}

	tag, err := language.Parse(code.String())
	if err != nil {
		return fmt.Errorf("parse language %q: %w", code, err)
	}
	bundle := i18n.NewBundle(tag)
	messages := make([]*i18n.Message, 0, len(dict))
	keys := make([]string, 0, len(dict))
	for key, value := range dict {
		messages = append(messages, &i18n.Message{ID: key, Other: value})
		keys = append(keys, key)
	}
	if err := bundle.AddMessages(tag, messages...); err != nil {
		return fmt.Errorf("load %s messages: %w", code, err)
	}
	sort.Strings(keys)

	t.localizers[code] = i18n.NewLocalizer(bundle, tag.String())
	t.keys[code] = keys
	return nil
}

// Lookup returns the string for key in code's dictionary.
func (t *Table) Lookup(code locale.Code, key string) (string, bool) {
	localizer, ok := t.localizers[code]
	if !ok || key == "" {
		return "", false
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return "", false
	}
	return msg, true
}

// Translate returns the string for key, or fallback when the key is missing.
func (t *Table) Translate(code locale.Code, key, fallback string) string {
	if value, ok := t.Lookup(code, key); ok {
		return value
	}
	return fallback
}

// Keys lists the keys of code's dictionary in sorted order.
func (t *Table) Keys(code locale.Code) []string {
	return append([]string(nil), t.keys[code]...)
}

// IsRichKey reports whether key holds markup rather than plain text.
func IsRichKey(key string) bool {
	return strings.Contains(key, "Subtitle") || strings.Contains(key, "Instructions")
}
