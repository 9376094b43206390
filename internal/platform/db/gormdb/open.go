// Package gormdb は gorm による PostgreSQL 接続を提供します。
package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/ogurasousui/employee-registry/internal/platform/config"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
	"github.com/ogurasousui/employee-registry/internal/platform/db/sqldb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowThreshold = 200 * time.Millisecond

// Open は gorm で接続を開き疎通確認を行います。
// gorm の SQL ログは log の debug レベルにのみ出力されます。
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{Logger: NewLogger(log)},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: gormdb: open: %w", db.ErrConnection, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: gormdb: underlying db: %w", db.ErrConnection, err)
	}
	sqldb.Configure(sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: gormdb: ping: %w", db.ErrConnection, err)
	}

	return gdb, nil
}

// NewLogger は zap へ書き込む gorm のロガーを返します。
func NewLogger(log *zap.Logger) logger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return logger.New(zapWriter{sugar: log.Sugar()}, logger.Config{
		SlowThreshold: slowThreshold,
		LogLevel:      LogMode(zapcore.LevelOf(log.Core())),
		Colorful:      false,
	})
}

// LogMode は zap のレベルを gorm のログモードに対応付けます。
// gorm は重複エラーなど想定内の失敗もログに出すため、debug 以外では抑止します。
func LogMode(level zapcore.Level) logger.LogLevel {
	if level <= zapcore.DebugLevel {
		return logger.Info
	}
	return logger.Silent
}

type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Debugf(format, args...)
}
