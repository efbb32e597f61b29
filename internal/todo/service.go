// Package todo はToDoのCRUD操作に関するビジネスロジックを提供する。
package todo

import (
	"context"
	"strings"

	"github.com/hitoshi/taskbase/internal/model"
	"github.com/hitoshi/taskbase/internal/repository"
)

// Service はToDo操作のビジネスロジックを提供する。
// 全ての操作は認証済みユーザーのIDを受け取り、リポジトリが所有者で絞り込む。
type Service struct {
	todoRepo repository.TodoRepository
}

// NewService はServiceを生成する。
func NewService(todoRepo repository.TodoRepository) *Service {
	return &Service{todoRepo: todoRepo}
}

// List は所有者のToDo一覧をID降順（新しい順）で返す。
func (s *Service) List(ctx context.Context, ownerID int64) ([]*model.Todo, error) {
	return s.todoRepo.ListByOwner(ctx, ownerID)
}

// Create はToDoを作成する。タイトルが空の場合はVALIDATION_ERRORを返す。
func (s *Service) Create(ctx context.Context, ownerID int64, title string) (*model.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, model.NewValidationError("タイトルは必須です。")
	}
	return s.todoRepo.Create(ctx, ownerID, title)
}

// Update はToDoを部分更新する。updateのnilフィールドは既存の値を維持する。
// 存在しない場合、または他ユーザー所有の場合はTODO_NOT_FOUNDを返す。
func (s *Service) Update(ctx context.Context, ownerID, todoID int64, update model.TodoUpdate) (*model.Todo, error) {
	updated, err := s.todoRepo.Update(ctx, todoID, ownerID, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewTodoNotFoundError(todoID)
	}
	return updated, nil
}

// Delete はToDoを削除する。対象が存在しない場合や他ユーザー所有の場合も
// 成功として扱う（冪等）。
func (s *Service) Delete(ctx context.Context, ownerID, todoID int64) error {
	return s.todoRepo.Delete(ctx, todoID, ownerID)
}
