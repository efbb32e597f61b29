// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskbase/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDを含むユーザーを返す。
	// メールアドレスが重複している場合はmodel.APIError(DUPLICATE_EMAIL)を返す。
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TodoRepository はToDoデータの永続化インターフェース。
// 全ての読み書きは呼び出し元のownerIDでクエリレベルで絞り込む。
// 所有権チェックを後付けで行うのではなく、他ユーザーの行がそもそも結果に現れない。
type TodoRepository interface {
	// Create はToDoを作成し、採番されたIDを含むToDoを返す。
	Create(ctx context.Context, ownerID int64, title string) (*model.Todo, error)

	// ListByOwner は所有者のToDo一覧をID降順（新しい順）で返す。
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Todo, error)

	// FindByIDAndOwner は指定IDかつ指定所有者のToDoを取得する。
	// 存在しない場合、または他ユーザー所有の場合はnilを返す。
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Todo, error)

	// Update はToDoを部分更新する。updateのnilフィールドは既存の値を維持する。
	// 存在しない場合、または他ユーザー所有の場合はnilを返す。
	Update(ctx context.Context, id, ownerID int64, update model.TodoUpdate) (*model.Todo, error)

	// Delete は指定IDかつ指定所有者のToDoを削除する。
	// 対象が存在しない場合もエラーにしない（冪等）。
	Delete(ctx context.Context, id, ownerID int64) error
}
