// Package sqldb は database/sql と lib/pq による接続を提供します。
package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
)

// DriverName は lib/pq が database/sql に登録する名前です。
const DriverName = "postgres"

// Open は lib/pq で接続を開き疎通確認を行います。
// セッションは単一接続で動作するため、接続数は 1 に制限します。
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open(DriverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: sqldb: open: %w", db.ErrConnection, err)
	}

	Configure(conn)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: sqldb: ping: %w", db.ErrConnection, err)
	}

	return conn, nil
}

// Configure は *sql.DB を単一接続の設定にします。
func Configure(conn *sql.DB) {
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
}
