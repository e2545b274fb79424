package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/rogerio-castellano/blog-api/internal/auth"
	"github.com/rogerio-castellano/blog-api/internal/db"
	api "github.com/rogerio-castellano/blog-api/internal/http"
	"github.com/rogerio-castellano/blog-api/internal/http/handlers"
	"github.com/rogerio-castellano/blog-api/internal/logging"
	"github.com/rogerio-castellano/blog-api/internal/posts"
	"github.com/rogerio-castellano/blog-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	store  *db.Store
	router http.Handler
)

// setupTestStore opens a fresh SQLite file under dir and builds the router
// on top of it. DATABASE_URL overrides the file, e.g. to run against
// PostgreSQL.
func setupTestStore(dir string) error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = filepath.Join(dir, "blog_test.db")
	}

	var err error
	store, err = db.Open(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("could not open test database: %w", err)
	}

	var (
		users    repo.UserRepository
		postRepo repo.PostRepository
	)
	if store.Dialect == db.DialectPostgres {
		users, postRepo = repo.NewPostgresUserRepository(store.DB), repo.NewPostgresPostRepository(store.DB)
	} else {
		users, postRepo = repo.NewSQLiteUserRepository(store.DB), repo.NewSQLitePostRepository(store.DB)
	}

	srv := handlers.NewServer(
		auth.NewService(users, auth.NewTokenIssuer([]byte("integration-secret"), 15*time.Minute), bcrypt.MinCost),
		posts.NewService(postRepo, users),
		store,
		logging.Discard(),
	)
	router = api.NewRouter(srv, api.Options{})
	return nil
}

func clearAll() {
	_, _ = store.DB.Exec("DELETE FROM posts")
	_, _ = store.DB.Exec("DELETE FROM users")
}

func send(method, target, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(username, password string) (string, error) {
	w := send(http.MethodPost, "/api/auth/register", "", handlers.CredentialsRequest{Username: username, Password: password})
	if w.Code != http.StatusCreated {
		return "", fmt.Errorf("register %s: status %d: %s", username, w.Code, w.Body.String())
	}
	var resp handlers.AuthResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func publish(token, title, content string) (handlers.PostResponse, error) {
	w := send(http.MethodPost, "/api/posts", token, handlers.PostRequest{Title: &title, Content: &content})
	if w.Code != http.StatusCreated {
		return handlers.PostResponse{}, fmt.Errorf("create post: status %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.PostResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	return resp, err
}
