package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// OPTIONSプリフライトに204で応答することを検証
func TestCORSMiddleware_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/todos", nil)
	w := httptest.NewRecorder()

	NewCORSMiddleware("http://localhost:5173")(next).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q, want %q", got, "http://localhost:5173")
	}
}

// ベアラートークンのためAuthorizationヘッダーが許可されていることを検証
func TestCORSMiddleware_AllowsAuthorizationHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	w := httptest.NewRecorder()

	NewCORSMiddleware("http://localhost:5173")(next).ServeHTTP(w, req)

	allowed := w.Header().Get("Access-Control-Allow-Headers")
	if !strings.Contains(allowed, "Authorization") {
		t.Errorf("Allow-Headers should include Authorization, got %q", allowed)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
