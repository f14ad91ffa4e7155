package lsp

import (
	"net/url"
	"path"
)

// canonicalURI normalizes a file URI so differently-escaped spellings of
// the same document key the store identically. Non-file and unparsable
// URIs come back unchanged; the store keys by string either way.
func canonicalURI(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uri
	}
	p := parsed.Path
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	rebuilt := url.URL{Scheme: "file", Host: parsed.Host, Path: path.Clean(p)}
	return rebuilt.String()
}
