// Package client はTaskBase APIのGoクライアントを提供する。
// トークンをクライアント側ストレージに保持し、全リクエストに付与する。
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName はトークンを保存するファイル名（固定キー）。
const tokenFileName = "token"

// TokenStore はクライアント側のトークン永続化インターフェース。
type TokenStore interface {
	// Load は保存済みトークンを返す。未保存の場合は空文字列を返す。
	Load() (string, error)
	// Save はトークンを保存する。
	Save(token string) error
	// Clear は保存済みトークンを破棄する。未保存の場合もエラーにしない。
	Clear() error
}

// FileTokenStore はユーザー設定ディレクトリ配下のファイルにトークンを保存する。
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore はユーザー設定ディレクトリ（例: ~/.config/taskbase）を使う
// FileTokenStoreを生成する。
func NewFileTokenStore() (*FileTokenStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return &FileTokenStore{dir: filepath.Join(base, "taskbase")}, nil
}

// NewFileTokenStoreAt は指定ディレクトリを使うFileTokenStoreを生成する。
// テストや複数環境の切り替えで使用する。
func NewFileTokenStoreAt(dir string) *FileTokenStore {
	return &FileTokenStore{dir: dir}
}

// Load は保存済みトークンを返す。未保存の場合は空文字列を返す。
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save はトークンをファイルに保存する。ディレクトリが無ければ作成する。
// トークンは資格情報のため、所有者のみ読み書き可能なパーミッションで保存する。
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFileName), []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear は保存済みトークンを破棄する。未保存の場合もエラーにしない。
func (s *FileTokenStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, tokenFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TokenStore = (*FileTokenStore)(nil)
