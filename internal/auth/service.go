package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/taskbase/internal/model"
	"github.com/hitoshi/taskbase/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // bcryptコストファクター。0の場合はDefaultBcryptCost
}

// Service は登録・ログインのビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, tokens *TokenManager, config ServiceConfig) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		config:   config,
	}
}

// Register は新規ユーザーを登録し、トークンを発行する。
// メールアドレス重複の場合はDUPLICATE_EMAILエラーを返す。
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", model.NewValidationError("メールアドレスとパスワードは必須です。")
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, email, hash)
	if err != nil {
		return "", err
	}

	slog.Info("new user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Login はパスワードを照合し、トークンを発行する。
// アカウント列挙を防ぐため、未登録メールとパスワード誤りは同一のエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", model.NewInvalidCredentialsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return "", model.NewInvalidCredentialsError()
	}

	slog.Info("user logged in", slog.Int64("user_id", user.ID))

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
