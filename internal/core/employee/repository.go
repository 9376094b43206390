package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	// EnsureSchema は employees テーブルが存在しなければ作成します。
	EnsureSchema(ctx context.Context) error
	// Create は社員を登録し、採番済みの行を返します。
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	// List は全社員を ID の昇順で返します。
	List(ctx context.Context) ([]*Employee, error)
}

// Store は接続を所有するリポジトリです。Close は接続を解放します。
type Store interface {
	Repository
	Close() error
}
