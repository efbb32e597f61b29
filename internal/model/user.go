// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、APIレスポンスには絶対に含めない。
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
