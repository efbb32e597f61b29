package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskbase/internal/middleware"
	"github.com/hitoshi/taskbase/internal/model"
)

// TodoServiceInterface はToDoハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	// List は所有者のToDo一覧をID降順で返す。
	List(ctx context.Context, ownerID int64) ([]*model.Todo, error)
	// Create はToDoを作成する。
	Create(ctx context.Context, ownerID int64, title string) (*model.Todo, error)
	// Update はToDoを部分更新する。nilフィールドは変更しない。
	Update(ctx context.Context, ownerID, todoID int64, update model.TodoUpdate) (*model.Todo, error)
	// Delete はToDoを冪等に削除する。
	Delete(ctx context.Context, ownerID, todoID int64) error
}

// TodoHandler はToDo管理のHTTPハンドラー。
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// intBool はJSON上で0|1として表現される真偽値。
// 元システムのワイヤフォーマット（doneカラムが整数）との互換のため。
type intBool bool

// MarshalJSON はtrueを1、falseを0として出力する。
func (b intBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON は0|1とtrue|falseの両方を受け付ける。
func (b *intBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "1", "true":
		*b = true
	default:
		*b = false
	}
	return nil
}

// createTodoRequest はToDo作成リクエストのボディ。
type createTodoRequest struct {
	Title string `json:"title"`
}

// updateTodoRequest はToDo更新リクエストのボディ。
// 未指定のフィールドは既存の値を維持する。
type updateTodoRequest struct {
	Title *string `json:"title,omitempty"`
	Done  *bool   `json:"done,omitempty"`
}

// todoResponse はToDoのAPIレスポンス。
type todoResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Done      intBool   `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// toTodoResponse はドメインのTodoをレスポンス型に変換する。
func toTodoResponse(todo *model.Todo) todoResponse {
	return todoResponse{
		ID:        todo.ID,
		UserID:    todo.OwnerID,
		Title:     todo.Title,
		Done:      intBool(todo.Done),
		CreatedAt: todo.CreatedAt,
	}
}

// todoIDFromRequest はURLパラメータからToDoのIDを取り出す。
// 数値として解釈できない場合は0を返す（ID 0の行は存在しないため、
// 更新では404、削除では冪等な無操作になる）。
func todoIDFromRequest(r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ListTodos は認証済みユーザーのToDo一覧を取得する。
// GET /api/todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	todos, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]todoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = toTodoResponse(todo)
	}

	writeJSON(w, http.StatusOK, responses)
}

// CreateTodo はToDoを作成する。
// POST /api/todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました。"))
		return
	}

	todo, err := h.service.Create(r.Context(), identity.UserID, req.Title)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

// UpdateTodo はToDoを部分更新する。
// PUT /api/todos/{id}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました。"))
		return
	}

	todo, err := h.service.Update(r.Context(), identity.UserID, todoIDFromRequest(r), model.TodoUpdate{
		Title: req.Title,
		Done:  req.Done,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// DeleteTodo はToDoを削除する。対象が存在しない場合も204を返す（冪等）。
// DELETE /api/todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, todoIDFromRequest(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
