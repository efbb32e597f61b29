package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL はトークンの有効期間。発行時に固定され、途中失効はできない。
const DefaultTokenTTL = 7 * 24 * time.Hour

// トークン検証エラー
var (
	// ErrInvalidToken は署名不正またはペイロード不正を示す。
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken は有効期限切れを示す。
	// HTTPレスポンス上はErrInvalidTokenと区別しないが、ログには原因を残す。
	ErrExpiredToken = errors.New("token expired")
)

// Identity は検証済みトークンから取り出したユーザー識別情報を表す。
// 認証ミドルウェアの成功パスでのみ生成され、ハンドラーに引き渡される。
type Identity struct {
	UserID int64
	Email  string
}

// Claims はJWTに格納する情報を定義する。
// subにユーザーID、emailをプライベートクレームとして持つ。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager はHS256署名のJWTを発行・検証する。
// トークンはサーバー側に保存しないステートレスなベアラー資格情報。
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager はTokenManagerを生成する。
// ttlが0の場合はDefaultTokenTTL（7日）を使用する。
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue は指定ユーザーのトークンを発行する。
func (m *TokenManager) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、ユーザー識別情報を返す。
// 署名不正・ペイロード不正はErrInvalidToken、期限切れはErrExpiredTokenを返す。
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// 署名方式がHS256であることを確認する
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: malformed sub claim", ErrInvalidToken)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	return &Identity{UserID: userID, Email: claims.Email}, nil
}
