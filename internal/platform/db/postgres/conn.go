package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
)

// Queryer は pgx.Conn と互換性のあるクエリ実行インターフェースです。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Conn は単一接続として扱うクエリ実行と解放のインターフェースです。
type Conn interface {
	Queryer
	Close(ctx context.Context) error
}

// BuildConnConfig は database 設定から pgx.ConnConfig を構築します。
func BuildConnConfig(cfg config.DatabaseConfig) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.ConnectTimeout > 0 {
		connCfg.ConnectTimeout = cfg.ConnectTimeout
	}

	return connCfg, nil
}

// Connect は単一の pgx.Conn を生成し疎通確認を行います。
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgx.Conn, error) {
	connCfg, err := BuildConnConfig(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: connect: %w", db.ErrConnection, err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("%w: postgres: ping: %w", db.ErrConnection, err)
	}

	return conn, nil
}
