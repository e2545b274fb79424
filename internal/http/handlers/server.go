package handlers

import (
	"context"

	"github.com/rogerio-castellano/blog-api/internal/auth"
	"github.com/rogerio-castellano/blog-api/internal/logging"
	"github.com/rogerio-castellano/blog-api/internal/posts"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the application context shared by every handler. It is built
// once at startup and never mutated afterwards.
type Server struct {
	Auth   *auth.Service
	Posts  *posts.Service
	Store  Pinger
	Logger logging.Logger
}

func NewServer(authSvc *auth.Service, postSvc *posts.Service, store Pinger, logger logging.Logger) *Server {
	return &Server{
		Auth:   authSvc,
		Posts:  postSvc,
		Store:  store,
		Logger: logger,
	}
}
