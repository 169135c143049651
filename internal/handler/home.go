// Package handler turns HTTP requests into service calls and renders the
// resulting HTML pages.
//
// Every handler follows the same shape:
//  1. Parse the route parameter and form values
//  2. Call one service method
//  3. Render a page, or redirect with 302 after a successful form submission
//
// Errors go through Renderer.Error, which is the single place that maps
// apperror values to status codes.
package handler

import "net/http"

// HomeHandler serves the root path.
type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HandleHome redirects to the user list, which doubles as the home page.
//
// HTTP: GET /
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/users")
}
