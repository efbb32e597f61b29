// Package model はドメインモデルを定義する。
package model

import "time"

// Todo はユーザーが所有するToDoタスクを表す。
// OwnerIDは所有者のユーザーIDであり、全ての読み書きはOwnerIDで絞り込まれる。
type Todo struct {
	ID        int64
	OwnerID   int64
	Title     string
	Done      bool
	CreatedAt time.Time
}

// TodoUpdate はToDoの部分更新を表す。
// nilのフィールドは変更せず、既存の値を維持する。
type TodoUpdate struct {
	Title *string
	Done  *bool
}
