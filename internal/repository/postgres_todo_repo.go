package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskbase/internal/model"
)

// PostgresTodoRepo はPostgreSQLを使用したToDoリポジトリ。
// 全クエリのWHERE句にuser_idを含めることで、他ユーザーの行へのアクセスを
// クエリレベルで不可能にする。
type PostgresTodoRepo struct {
	db *sql.DB
}

// NewPostgresTodoRepo はPostgresTodoRepoを生成する。
func NewPostgresTodoRepo(db *sql.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

// Create はToDoを作成し、採番されたIDを含むToDoを返す。
func (r *PostgresTodoRepo) Create(ctx context.Context, ownerID int64, title string) (*model.Todo, error) {
	todo := &model.Todo{OwnerID: ownerID, Title: title}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (user_id, title)
		 VALUES ($1, $2)
		 RETURNING id, done, created_at`,
		ownerID, title,
	).Scan(&todo.ID, &todo.Done, &todo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return todo, nil
}

// ListByOwner は所有者のToDo一覧をID降順（新しい順）で返す。
func (r *PostgresTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, done, created_at
		 FROM todos WHERE user_id = $1 ORDER BY id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	// ToDoが0件でも空スライスを返す（JSONではnullではなく[]になる）
	todos := []*model.Todo{}
	for rows.Next() {
		todo := &model.Todo{}
		if err := rows.Scan(&todo.ID, &todo.OwnerID, &todo.Title, &todo.Done, &todo.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// FindByIDAndOwner は指定IDかつ指定所有者のToDoを取得する。
// 存在しない場合、または他ユーザー所有の場合はnilを返す。
func (r *PostgresTodoRepo) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, done, created_at
		 FROM todos WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	).Scan(&todo.ID, &todo.OwnerID, &todo.Title, &todo.Done, &todo.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	return todo, nil
}

// Update はToDoを部分更新する。updateのnilフィールドはCOALESCEで既存の値を維持する。
// 存在しない場合、または他ユーザー所有の場合はnilを返す。
func (r *PostgresTodoRepo) Update(ctx context.Context, id, ownerID int64, update model.TodoUpdate) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE todos
		 SET title = COALESCE($3, title), done = COALESCE($4, done)
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, done, created_at`,
		id, ownerID, update.Title, update.Done,
	).Scan(&todo.ID, &todo.OwnerID, &todo.Title, &todo.Done, &todo.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// Delete は指定IDかつ指定所有者のToDoを削除する。
// 対象が存在しない場合や他ユーザー所有の場合も削除行数0で正常終了する（冪等）。
func (r *PostgresTodoRepo) Delete(ctx context.Context, id, ownerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TodoRepository = (*PostgresTodoRepo)(nil)
