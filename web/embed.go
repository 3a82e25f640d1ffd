// Package web embeds the page shells, shared fragments and about-page
// markdown served by the site.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed shared/*.html pages/*.html content
var assets embed.FS

// Assets returns the embedded asset tree rooted at web/.
func Assets() fs.FS {
	return assets
}

// Shared returns the shared fragment directory.
func Shared() fs.FS {
	sub, err := fs.Sub(assets, "shared")
	if err != nil {
		panic(err)
	}
	return sub
}

// Shell returns the page shell markup for a page type.
func Shell(page string) (string, error) {
	data, err := fs.ReadFile(assets, "pages/"+page+".html")
	if err != nil {
		return "", fmt.Errorf("page shell %s: %w", page, err)
	}
	return string(data), nil
}

// Content returns the markdown source of an about page in lang.
func Content(lang, name string) ([]byte, error) {
	data, err := fs.ReadFile(assets, "content/"+lang+"/"+name+".md")
	if err != nil {
		return nil, fmt.Errorf("content %s/%s: %w", lang, name, err)
	}
	return data, nil
}
