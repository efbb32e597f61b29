package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthenticated は401レスポンスを示す。
// 呼び出し元は再ログインしてからリトライする必要がある。
var ErrUnauthenticated = errors.New("unauthenticated: login required")

// Todo はAPIから取得したToDoを表す。
// doneはワイヤ上0|1で表現されるため、カスタムUnmarshalで受ける。
type Todo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Done      IntBool   `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// IntBool はJSON上で0|1として表現される真偽値。
type IntBool bool

// UnmarshalJSON は0|1とtrue|falseの両方を受け付ける。
func (b *IntBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "1", "true":
		*b = true
	default:
		*b = false
	}
	return nil
}

// MarshalJSON はtrueを1、falseを0として出力する。
func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// TodoUpdate はToDo部分更新のリクエスト。nilフィールドは送信しない。
type TodoUpdate struct {
	Title *string `json:"title,omitempty"`
	Done  *bool   `json:"done,omitempty"`
}

// apiErrorBody はサーバーの統一エラーフォーマット。
type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client はTaskBase APIのHTTPクライアント。
// TokenStoreに保持したトークンを全リクエストのAuthorizationヘッダーに付与する。
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// New はClientを生成する。baseURLは末尾スラッシュなしで指定する
// （例: "http://localhost:8080"）。
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     tokens,
	}
}

// IsLoggedIn はトークンが保存されているかを返す。
// トークンの有効性は検証しない（無効なら次のリクエストが401になる）。
func (c *Client) IsLoggedIn() bool {
	token, err := c.tokens.Load()
	return err == nil && token != ""
}

// Register は新規ユーザーを登録し、発行されたトークンを保存する。
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

// Login はログインし、発行されたトークンを保存する。
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

// Logout は保存済みトークンを破棄する。
// トークンはサーバー側で失効できないため、破棄はクライアント側のみで完結する。
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// ListTodos は自分のToDo一覧を新しい順で取得する。
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// AddTodo はToDoを作成する。
func (c *Client) AddTodo(ctx context.Context, title string) (*Todo, error) {
	todo := &Todo{}
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/api/todos", body, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodo はToDoを部分更新する。updateのnilフィールドは変更されない。
func (c *Client) UpdateTodo(ctx context.Context, id int64, update TodoUpdate) (*Todo, error) {
	todo := &Todo{}
	path := fmt.Sprintf("/api/todos/%d", id)
	if err := c.do(ctx, http.MethodPut, path, update, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteTodo はToDoを削除する。存在しないIDの削除も成功する（冪等）。
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/todos/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// authenticate は認証エンドポイントを呼び、返ってきたトークンを保存する。
func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// do はJSONリクエストを送信し、レスポンスをoutにデコードする。
// 保存済みトークンがあればAuthorizationヘッダーに付与する。
// 401はErrUnauthenticated、その他のエラーレスポンスはメッセージ付きエラーを返す。
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, err := c.tokens.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode >= 400 {
		var apiErr apiErrorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("api error %s (%d): %s", apiErr.Code, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
