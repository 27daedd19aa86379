// Package site serves the embedded advisor page.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the advisor page and its assets to r.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.FileServer(FS())
	r.Get("/", files.ServeHTTP)
	r.Get("/app.js", files.ServeHTTP)
	r.Get("/style.css", files.ServeHTTP)
}
