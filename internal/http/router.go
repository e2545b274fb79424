package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/rogerio-castellano/blog-api/docs"
	"github.com/rogerio-castellano/blog-api/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Options configures the parts of the router that are not handlers.
type Options struct {
	// Frontend holds the built single-page app. Nil disables the fallback.
	Frontend       fs.FS
	AllowedOrigins []string
}

func NewRouter(s *handlers.Server, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.Logger))
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.HealthHandler)

		r.Post("/auth/register", s.RegisterHandler)
		r.Post("/auth/login", s.LoginHandler)

		r.Get("/posts", s.GetPostsHandler)
		r.Get("/posts/{id}", s.GetPostByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.Auth))
			r.Post("/posts", s.CreatePostHandler)
			r.Put("/posts/{id}", s.UpdatePostHandler)
			r.Delete("/posts/{id}", s.DeletePostHandler)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			handlers.WriteError(w, http.StatusNotFound, "not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			handlers.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	spa := SPAHandler(opts.Frontend)
	r.Get("/*", spa)
	r.Head("/*", spa)

	return r
}
