package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// memoryTokenStore はテスト用のインメモリTokenStore。
type memoryTokenStore struct {
	token string
}

func (s *memoryTokenStore) Load() (string, error)   { return s.token, nil }
func (s *memoryTokenStore) Save(token string) error { s.token = token; return nil }
func (s *memoryTokenStore) Clear() error            { s.token = ""; return nil }

// ログイン成功でトークンが保存されることを検証
func TestClient_LoginSavesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@x.com" || body["password"] != "pw" {
			t.Errorf("unexpected credentials: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
	}))
	defer server.Close()

	store := &memoryTokenStore{}
	c := New(server.URL, store)

	if err := c.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if store.token != "issued-token" {
		t.Errorf("saved token = %q, want issued-token", store.token)
	}
	if !c.IsLoggedIn() {
		t.Error("IsLoggedIn() should be true after login")
	}
}

// 保存済みトークンがAuthorizationヘッダーに付与されることを検証
func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{token: "stored-token"})

	if _, err := c.ListTodos(context.Background()); err != nil {
		t.Fatalf("ListTodos() error = %v", err)
	}
	if gotAuth != "Bearer stored-token" {
		t.Errorf("Authorization = %q, want Bearer stored-token", gotAuth)
	}
}

// done=0|1のワイヤフォーマットを正しくデコードすることを検証
func TestClient_DecodesIntBoolDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"user_id":1,"title":"a","done":1,"created_at":"2026-08-29T00:00:00Z"},
			{"id":2,"user_id":1,"title":"b","done":0,"created_at":"2026-08-29T00:00:00Z"}]`))
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{token: "tok"})

	todos, err := c.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos() error = %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("len = %d, want 2", len(todos))
	}
	if !bool(todos[0].Done) {
		t.Error("todos[0].Done should be true (wire value 1)")
	}
	if bool(todos[1].Done) {
		t.Error("todos[1].Done should be false (wire value 0)")
	}
}

// 401レスポンスがErrUnauthenticatedとして返ることを検証
func TestClient_UnauthorizedBecomesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{})

	_, err := c.ListTodos(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

// エラーレスポンスのメッセージがエラーに含まれることを検証
func TestClient_APIErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "DUPLICATE_EMAIL",
			"message": "このメールアドレスは既に登録されています",
		})
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{})

	err := c.Register(context.Background(), "dup@x.com", "pw")
	if err == nil {
		t.Fatal("Register() should fail on 409")
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Error("409 should not map to ErrUnauthenticated")
	}
	if !strings.Contains(err.Error(), "DUPLICATE_EMAIL") {
		t.Errorf("error should carry the API error code: %v", err)
	}
}

// 部分更新でnilフィールドが送信されないことを検証
func TestClient_UpdateOmitsNilFields(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":1,"user_id":1,"title":"a","done":1,"created_at":"2026-08-29T00:00:00Z"}`))
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{token: "tok"})

	done := true
	if _, err := c.UpdateTodo(context.Background(), 1, TodoUpdate{Done: &done}); err != nil {
		t.Fatalf("UpdateTodo() error = %v", err)
	}

	if _, ok := gotBody["title"]; ok {
		t.Errorf("title should be omitted when nil: %v", gotBody)
	}
	if gotBody["done"] != true {
		t.Errorf("done = %v, want true", gotBody["done"])
	}
}

// ログアウトでトークンが破棄されることを検証
func TestClient_Logout(t *testing.T) {
	store := &memoryTokenStore{token: "tok"}
	c := New("http://unused", store)

	if err := c.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if c.IsLoggedIn() {
		t.Error("IsLoggedIn() should be false after logout")
	}
}
