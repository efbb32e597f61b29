package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/taskbase/internal/model"
)

// --- モック定義 ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, email, passwordHash string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, passwordHash)
	}
	return &model.User{ID: 1, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func newTestService(repo *mockUserRepo) *Service {
	tokens := NewTokenManager([]byte("test-secret"), time.Hour)
	// テスト高速化のため最小コストを使う
	return NewService(repo, tokens, ServiceConfig{BcryptCost: 4})
}

// --- Register ---

// 登録成功時に検証可能なトークンが発行されることを検証
func TestService_Register_IssuesVerifiableToken(t *testing.T) {
	var savedHash string
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, email, passwordHash string) (*model.User, error) {
			savedHash = passwordHash
			return &model.User{ID: 7, Email: email, PasswordHash: passwordHash}, nil
		},
	}
	svc := newTestService(repo)

	token, err := svc.Register(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	identity, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if identity.UserID != 7 || identity.Email != "a@x.com" {
		t.Errorf("identity = %+v, want UserID=7 Email=a@x.com", identity)
	}

	// 平文パスワードは保存されず、照合可能なハッシュのみ保存されること
	if savedHash == "pw1" {
		t.Error("password must not be stored in plain text")
	}
	if !VerifyPassword("pw1", savedHash) {
		t.Error("stored hash should verify against the original password")
	}
}

// 必須フィールド欠落はVALIDATION_ERRORになることを検証
func TestService_Register_MissingFields(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"a@x.com", ""},
		{"   ", "pw"},
	} {
		_, err := svc.Register(context.Background(), tc.email, tc.password)
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidation {
			t.Errorf("Register(%q, %q): expected validation error, got %v", tc.email, tc.password, err)
		}
	}
}

// リポジトリのDUPLICATE_EMAILがそのまま伝播することを検証
func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, email, passwordHash string) (*model.User, error) {
			return nil, model.NewDuplicateEmailError()
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "dup@x.com", "pw")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeDuplicateEmail {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", err)
	}
}

// --- Login ---

// 登録済み資格情報でログインできることを検証
func TestService_Login_Success(t *testing.T) {
	hash, err := HashPassword("pw1", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 3, Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestService(repo)

	token, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	identity, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if identity.UserID != 3 {
		t.Errorf("UserID = %d, want 3", identity.UserID)
	}
}

// 未登録メールとパスワード誤りが同一メッセージのエラーになることを検証
// （アカウント列挙防止）
func TestService_Login_IndistinguishableFailures(t *testing.T) {
	hash, err := HashPassword("correct", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == "known@x.com" {
				return &model.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(repo)

	_, errUnknown := svc.Login(context.Background(), "unknown@x.com", "whatever")
	_, errWrongPw := svc.Login(context.Background(), "known@x.com", "wrong")

	var apiErrUnknown, apiErrWrongPw *model.APIError
	if !errors.As(errUnknown, &apiErrUnknown) {
		t.Fatalf("expected APIError for unknown email, got %v", errUnknown)
	}
	if !errors.As(errWrongPw, &apiErrWrongPw) {
		t.Fatalf("expected APIError for wrong password, got %v", errWrongPw)
	}

	if apiErrUnknown.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("unknown email code = %q, want INVALID_CREDENTIALS", apiErrUnknown.Code)
	}
	if apiErrUnknown.Message != apiErrWrongPw.Message {
		t.Errorf("failure messages should be identical: %q vs %q",
			apiErrUnknown.Message, apiErrWrongPw.Message)
	}
}

// リポジトリ障害はAPIErrorに変換せずそのまま返すことを検証（500系として扱われる）
func TestService_Login_StorageError(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "a@x.com", "pw")
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("storage error should not be an APIError, got %v", apiErr)
	}
	if err == nil {
		t.Error("expected an error")
	}
}
