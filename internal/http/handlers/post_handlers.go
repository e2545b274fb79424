package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/blog-api/internal/apperr"
	"github.com/rogerio-castellano/blog-api/internal/auth"
)

func postIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("post not found")
	}
	return id, nil
}

func currentUser(r *http.Request) (string, error) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		return "", apperr.Auth("missing authorization token")
	}
	return username, nil
}

// GetPostsHandler godoc
// @Summary List all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} PostResponse
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /api/posts [get]
func (s *Server) GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Posts.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	response := make([]PostResponse, len(posts))
	for i, p := range posts {
		response[i] = toPostResponse(p)
	}
	s.respond(w, r, http.StatusOK, response)
}

// GetPostByIDHandler godoc
// @Summary Get post by ID
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /api/posts/{id} [get]
func (s *Server) GetPostByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	post, err := s.Posts.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, toPostResponse(post))
}

// CreatePostHandler godoc
// @Summary Create a new post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body PostRequest true "Post to publish"
// @Success 201 {object} PostResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/posts [post]
func (s *Server) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	username, err := currentUser(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	req := readBody[PostRequest](w, r)
	post, err := s.Posts.Create(r.Context(), username, valueOrEmpty(req.Title), valueOrEmpty(req.Content))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, http.StatusCreated, toPostResponse(post))
}

// UpdatePostHandler godoc
// @Summary Update a post
// @Description Omitted fields keep their current value.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param post body PostRequest true "Fields to change"
// @Success 200 {object} PostResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /api/posts/{id} [put]
func (s *Server) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	username, err := currentUser(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := postIDParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	req := readBody[PostRequest](w, r)
	post, err := s.Posts.Update(r.Context(), id, username, req.Title, req.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, toPostResponse(post))
}

// DeletePostHandler godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /api/posts/{id} [delete]
func (s *Server) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	username, err := currentUser(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := postIDParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Posts.Delete(r.Context(), id, username); err != nil {
		s.fail(w, r, err)
		return
	}

	s.Logger.Info(r.Context(), "post deleted", "post_id", id, "username", username)
	s.respond(w, r, http.StatusOK, MessageResult{Message: "post deleted"})
}
