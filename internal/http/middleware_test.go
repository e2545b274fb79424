package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/blog-api/internal/apperr"
	"github.com/rogerio-castellano/blog-api/internal/auth"
	"github.com/rogerio-castellano/blog-api/internal/logging"
)

type verifierFunc func(token string) (string, error)

func (f verifierFunc) Verify(token string) (string, error) { return f(token) }

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def", "abc.def"},
		{"bearer abc", "abc"},
		{"BEARER   abc  ", "abc"},
		{"Basic dXNlcg==", ""},
		{"Bearer", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(req); got != tt.want {
			t.Errorf("header %q: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	v := verifierFunc(func(token string) (string, error) {
		switch token {
		case "":
			return "", apperr.Auth("missing authorization token")
		case "good":
			return "alice", nil
		default:
			return "", apperr.Auth("invalid or expired token")
		}
	})

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := AuthMiddleware(v)(next)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if seen != "alice" {
			t.Errorf("expected alice in context, got %q", seen)
		}
	})

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing", "", "missing authorization token"},
		{"invalid", "Bearer bad", "invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("error decoding body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, body["error"])
			}
		})
	}
}

func TestAuthMiddleware_InternalErrorIsHidden(t *testing.T) {
	v := verifierFunc(func(string) (string, error) { return "", errors.New("keystore offline") })
	h := AuthMiddleware(v)(http.NotFoundHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "keystore") {
		t.Errorf("internal cause leaked: %s", w.Body.String())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(logging.New(&buf, "info"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "request" || entry["path"] != "/api/posts" || entry["method"] != "GET" {
		t.Errorf("unexpected log entry: %v", entry)
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", entry["status"])
	}
	if entry["bytes"] != float64(len("short and stout")) {
		t.Errorf("unexpected bytes %v", entry["bytes"])
	}
}
