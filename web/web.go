// Package web carries the embedded single-page client for the quiz
// engine. It is intentionally minimal: the engine API is the product,
// the page is just enough UI to drive start, submit, retry and reset.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed index.html
var content embed.FS

func Handler() http.Handler {
	sub, err := fs.Sub(content, ".")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
