package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/blogly/internal/service"
)

// TagHandler serves the /tags pages.
type TagHandler struct {
	tags   *service.TagService
	render *Renderer
	logger *slog.Logger
}

func NewTagHandler(tags *service.TagService, render *Renderer, logger *slog.Logger) *TagHandler {
	return &TagHandler{tags: tags, render: render, logger: logger}
}

// HTTP: GET /tags
func (h *TagHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "tags/index.html", map[string]interface{}{
		"Tags": tags,
	})
}

// HandleShow lists the posts carrying the tag.
//
// HTTP: GET /tags/{id}
func (h *TagHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	tag, err := h.tags.Get(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "tags/show.html", map[string]interface{}{
		"Tag": tag,
	})
}

// HTTP: GET /tags/new
func (h *TagHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "tags/new.html", nil)
}

// HTTP: POST /tags/new
// FORM: name
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.render.Error(w, r, err)
		return
	}

	if _, err := h.tags.Create(r.Context(), r.PostForm.Get("name")); err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/tags")
}

// HTTP: GET /tags/{id}/edit
func (h *TagHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	tag, err := h.tags.Get(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "tags/edit.html", map[string]interface{}{
		"Tag": tag,
	})
}

// HandleUpdate renames the tag and shows it.
//
// HTTP: POST /tags/{id}/edit
func (h *TagHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	if err := parseForm(r); err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.logger.Debug("tag rename requested", slog.Uint64("id", uint64(id)))
	if _, err := h.tags.Update(r.Context(), id, r.PostForm.Get("name")); err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/tags/%d", id)
}
