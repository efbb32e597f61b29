package database

import "testing"

// Openが接続プールを設定した*sql.DBを返すことを検証。
// sql.Openは遅延接続のため、実際のデータベースなしで検証できる。
func TestOpen_ConfiguresPool(t *testing.T) {
	db, err := Open("postgres://localhost:5432/taskbase?sslmode=disable")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != maxOpenConns {
		t.Errorf("MaxOpenConnections = %d, want %d", got, maxOpenConns)
	}
}
