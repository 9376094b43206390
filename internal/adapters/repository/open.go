// Package repository は設定されたドライバーに応じて社員リポジトリを選択します。
package repository

import (
	"context"
	"fmt"

	"github.com/ogurasousui/employee-registry/internal/adapters/repository/gormdb"
	"github.com/ogurasousui/employee-registry/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-registry/internal/adapters/repository/sqldb"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
	"go.uber.org/zap"
)

// Open は cfg.Driver に対応する接続を開き employee.Store を返します。
// 未知のドライバー名の場合は db.ErrUnknownDriver を返します。
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (employee.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	driver, err := db.ResolveDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	log.Debug("opening database connection",
		zap.String("driver", driver),
		zap.String("endpoint", cfg.Endpoint()),
	)

	var store employee.Store
	switch driver {
	case db.DriverPGX:
		store, err = asStore(postgres.Open(ctx, cfg))
	case db.DriverPostgres:
		store, err = asStore(sqldb.Open(ctx, cfg))
	case db.DriverGORM:
		store, err = asStore(gormdb.Open(ctx, cfg, log))
	default:
		return nil, fmt.Errorf("%w %q", db.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// 失敗時に nil ポインタを保持したインターフェースを返さないようにします。
func asStore[S employee.Store](s S, err error) (employee.Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
