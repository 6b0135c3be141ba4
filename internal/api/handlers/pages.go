package handlers

import (
	"net/http"

	"github.com/ramonehamilton/proxygen/internal/render"
)

// Form serves the decklist input page.
func Form(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, http.StatusOK, render.FormPage())
}

// Stylesheet serves the shared stylesheet.
func Stylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(render.Stylesheet())
}
