package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/blogly/internal/service"
)

const recentPostsOnIndex = 5

// UserHandler serves the /users pages.
type UserHandler struct {
	users  *service.UserService
	posts  *service.PostService
	render *Renderer
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, posts *service.PostService, render *Renderer, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		posts:  posts,
		render: render,
		logger: logger,
	}
}

// HandleList shows every user plus the most recent posts.
//
// HTTP: GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	recent, err := h.posts.Recent(r.Context(), recentPostsOnIndex)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, r, http.StatusOK, "users/index.html", map[string]interface{}{
		"Users":  users,
		"Recent": recent,
	})
}

// HTTP: GET /users/new
func (h *UserHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "users/new.html", nil)
}

// HandleCreate saves the submitted user and returns to the list.
//
// HTTP: POST /users/new
// FORM: first_name, last_name, image_url
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.render.Error(w, r, err)
		return
	}

	_, err := h.users.Create(r.Context(),
		r.PostForm.Get("first_name"),
		r.PostForm.Get("last_name"),
		r.PostForm.Get("image_url"),
	)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/users")
}

// HandleShow shows one user and the posts they wrote.
//
// HTTP: GET /users/{id}
func (h *UserHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	user, posts, err := h.users.Profile(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, r, http.StatusOK, "users/show.html", map[string]interface{}{
		"User":  user,
		"Posts": posts,
	})
}

// HTTP: GET /users/{id}/edit
func (h *UserHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, r, http.StatusOK, "users/edit.html", map[string]interface{}{
		"User": user,
	})
}

// HandleUpdate overwrites the user's fields and returns to the list.
//
// HTTP: POST /users/{id}/edit
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	if err := parseForm(r); err != nil {
		h.render.Error(w, r, err)
		return
	}

	_, err = h.users.Update(r.Context(), id,
		r.PostForm.Get("first_name"),
		r.PostForm.Get("last_name"),
		r.PostForm.Get("image_url"),
	)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/users")
}

// HandleDelete removes the user and all of their posts.
//
// HTTP: POST /users/{id}/delete
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.logger.Info("user delete requested", slog.Uint64("id", uint64(id)))
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.render.Error(w, r, err)
		return
	}
	redirect(w, r, "/users")
}
