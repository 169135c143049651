package handler

// RESPONSE HELPERS:
// Every handler ends in one of two ways: it renders a page, or it redirects.
// Errors are a third kind of page, and they all go through Renderer.Error.
//
// STATUS CODES:
// Services never pick a status code. They return an apperror and the mapping
// below turns it into one:
//   apperror.ErrValidation → 400, the message names the bad field
//   apperror.ErrNotFound   → 404, e.g. "user not found with id 7"
//   anything else          → 500, the real error only goes to the log
//
// POST / REDIRECT / GET:
// A successful form submission answers with 302 Found and a Location header.
// The browser then issues a GET for that page, so pressing reload shows the
// page again instead of re-submitting the form.

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/blogly/internal/apperror"
)

var errPageNotFound = &apperror.AppError{
	Err:     apperror.ErrNotFound,
	Message: "The page you requested does not exist.",
}

// Error renders the error page for err with the status described above.
func (rr *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again."

	var appErr *apperror.AppError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	}
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		rr.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	rr.Render(w, r, status, errorTemplate, map[string]interface{}{
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Message":    message,
	})
}

// NotFound renders the 404 page. The router uses it for unmatched paths.
func (rr *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rr.Error(w, r, errPageNotFound)
}

// redirect sends 302 Found, the status every form submission answers with.
func redirect(w http.ResponseWriter, r *http.Request, format string, args ...interface{}) {
	http.Redirect(w, r, fmt.Sprintf(format, args...), http.StatusFound)
}

// parseID reads the {id} route parameter.
//
// The router only matches {id:[0-9]+}, so letters never get here. What can
// still arrive is 0 or a number too large for uint; both name a row that
// cannot exist, so they are reported as a missing page rather than bad input.
func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || id == 0 {
		return 0, errPageNotFound
	}
	return uint(id), nil
}

// ParseIDs converts the values of a multi-valued form field (the tag
// checkboxes) to IDs. A value that is not a number is a validation error;
// whether the ID exists is left to the database.
func ParseIDs(field string, values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			return nil, apperror.ValidationFailed(field, fmt.Sprintf("%q is not a valid id", v))
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseForm wraps r.ParseForm so a malformed body becomes a 400.
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apperror.ValidationFailed("form", "could not read the submitted form")
	}
	return nil
}
