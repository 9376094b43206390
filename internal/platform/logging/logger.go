// Package logging は設定から zap ロガーを構築します。
package logging

import (
	"fmt"
	"strings"

	"github.com/ogurasousui/employee-registry/internal/platform/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は LoggingConfig に従って zap.Logger を生成します。
// 標準出力はプロンプトと一覧表示に使うため、既定の出力先は stderr です。
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(cfg.Format)
	switch encoding {
	case "":
		encoding = config.DefaultLogFormat
	case "json", "console":
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	output := cfg.OutputPath
	if output == "" {
		output = config.DefaultLogOutput
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zcfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel はログレベル文字列を zapcore.Level に変換します。空文字列は既定値です。
func ParseLevel(raw string) (zapcore.Level, error) {
	if raw == "" {
		raw = config.DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}
