package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Seed はデモ用の初期データを投入する。
// 指定メールアドレスのユーザーが既に存在する場合は何もしない（冪等）。
// ユーザーと最初のToDoは同一トランザクションで作成する。
func Seed(ctx context.Context, db *sql.DB, email, passwordHash, todoTitle string) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check seed user: %w", err)
	}
	if exists {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to insert seed user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO todos (user_id, title) VALUES ($1, $2)`,
		userID, todoTitle,
	)
	if err != nil {
		return fmt.Errorf("failed to insert seed todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
