// Package db はドライバー名と接続失敗を表す共通の定義をまとめます。
package db

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// 設定の database.driver に指定できる名前です。
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverGORM     = "gorm"
)

var (
	// ErrUnknownDriver は設定されたドライバーが組み込まれていない場合に返却されます。
	ErrUnknownDriver = errors.New("db: unknown driver")
	// ErrConnection は接続の確立や疎通確認に失敗した場合に返却されます。
	ErrConnection = errors.New("db: connection failed")
)

// SupportedDrivers は利用可能なドライバー名を昇順で返します。
func SupportedDrivers() []string {
	drivers := []string{DriverPGX, DriverPostgres, DriverGORM}
	sort.Strings(drivers)
	return drivers
}

// ResolveDriver は大文字小文字と前後の空白を無視してドライバー名を正規化します。
// 組み込まれていない名前の場合は ErrUnknownDriver を返します。
func ResolveDriver(name string) (string, error) {
	driver := strings.ToLower(strings.TrimSpace(name))
	for _, supported := range SupportedDrivers() {
		if driver == supported {
			return driver, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownDriver, name)
}
