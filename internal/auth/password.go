// Package auth はパスワードハッシュ、トークン発行・検証、登録・ログインを提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost はbcryptのデフォルトコストファクター。
// 元システムと同じ10ラウンド相当に揃えている。
const DefaultBcryptCost = 10

// HashPassword は平文パスワードのbcryptハッシュを生成する。
// ソルトはbcryptが内部で生成する。
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword は平文パスワードとbcryptハッシュを照合する。
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
