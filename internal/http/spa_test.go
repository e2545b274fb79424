package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rogerio-castellano/blog-api/internal/auth"
	api "github.com/rogerio-castellano/blog-api/internal/http"
	"github.com/rogerio-castellano/blog-api/internal/http/handlers"
	"github.com/rogerio-castellano/blog-api/internal/logging"
	"github.com/rogerio-castellano/blog-api/internal/posts"
	"github.com/rogerio-castellano/blog-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var frontend = fstest.MapFS{
	"index.html":        {Data: []byte("<html>entry</html>")},
	"assets/app.js":     {Data: []byte("console.log('app')")},
	"assets/styles.css": {Data: []byte("body{}")},
}

func routerWithFrontend(t *testing.T) http.Handler {
	t.Helper()
	users := repo.NewInMemoryUserRepository()
	srv := handlers.NewServer(
		auth.NewService(users, auth.NewTokenIssuer([]byte(testSecret), time.Minute), bcrypt.MinCost),
		posts.NewService(repo.NewInMemoryPostRepository(users), users),
		nil,
		logging.Discard(),
	)
	return api.NewRouter(srv, api.Options{Frontend: frontend})
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSPAHandler_ServesExistingFile(t *testing.T) {
	r := routerWithFrontend(t)

	w := get(r, "/assets/app.js")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	if string(body) != "console.log('app')" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestSPAHandler_FallsBackToEntryDocument(t *testing.T) {
	r := routerWithFrontend(t)

	for _, target := range []string{"/", "/posts/12", "/login", "/assets/missing.js", "/assets"} {
		t.Run(target, func(t *testing.T) {
			w := get(r, target)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), "entry") {
				t.Errorf("expected the entry document, got %q", w.Body.String())
			}
		})
	}
}

func TestSPAHandler_DoesNotEscapeRoot(t *testing.T) {
	r := routerWithFrontend(t)

	w := get(r, "/../../etc/passwd")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for traversal attempt, got %d %q", w.Code, w.Body.String())
	}
}

func TestSPAHandler_APIRoutesWin(t *testing.T) {
	r := routerWithFrontend(t)

	w := get(r, "/api/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON from the API, got %q", ct)
	}

	w = get(r, "/api/unknown")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown API route, got %d", w.Code)
	}
}

func TestSPAHandler_NoFrontend(t *testing.T) {
	w := get(newTestRouter(t), "/anything")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a frontend build, got %d", w.Code)
	}
}

func TestSPAHandler_MissingEntryDocument(t *testing.T) {
	h := api.SPAHandler(fstest.MapFS{"favicon.ico": {Data: []byte("ico")}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/somewhere", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for existing file, got %d", w.Code)
	}
}
