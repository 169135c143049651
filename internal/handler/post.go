package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/blogly/internal/service"
)

// PostHandler serves the post pages, including the add-post form nested
// under /users/{id}.
type PostHandler struct {
	posts  *service.PostService
	render *Renderer
	logger *slog.Logger
}

func NewPostHandler(posts *service.PostService, render *Renderer, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, render: render, logger: logger}
}

// HTTP: GET /users/{id}/posts/new
func (h *PostHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	form, err := h.posts.NewPostForm(r.Context(), userID)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "posts/new.html", map[string]interface{}{
		"Form": form,
	})
}

// HandleCreate saves a post for the user and goes back to the user's page.
//
// HTTP: POST /users/{id}/posts/new
// FORM: title, content, tags (repeated)
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	if err := parseForm(r); err != nil {
		h.render.Error(w, r, err)
		return
	}
	tagIDs, err := ParseIDs("tags", r.PostForm["tags"])
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	_, err = h.posts.Create(r.Context(), userID, r.PostForm.Get("title"), r.PostForm.Get("content"), tagIDs)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/users/%d", userID)
}

// HTTP: GET /posts/{id}
func (h *PostHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "posts/show.html", map[string]interface{}{
		"Post": post,
	})
}

// HandleEditForm shows the edit form with the post's current tags checked.
//
// HTTP: GET /posts/{id}/edit
func (h *PostHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	form, err := h.posts.EditForm(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusOK, "posts/edit.html", map[string]interface{}{
		"Form": form,
	})
}

// HandleUpdate overwrites the post and replaces its tags with the checked set.
//
// HTTP: POST /posts/{id}/edit
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	if err := parseForm(r); err != nil {
		h.render.Error(w, r, err)
		return
	}
	tagIDs, err := ParseIDs("tags", r.PostForm["tags"])
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	_, err = h.posts.Update(r.Context(), id, r.PostForm.Get("title"), r.PostForm.Get("content"), tagIDs)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/posts/%d", id)
}

// HTTP: POST /posts/{id}/delete
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.logger.Info("post delete requested", slog.Uint64("id", uint64(id)))
	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/users")
}
