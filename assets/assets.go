// Package assets は実行バイナリに埋め込むスキーマ定義を提供します。
package assets

import "embed"

// Migrations は golang-migrate 形式のマイグレーションファイル群です。
//
//go:embed migrations/*.sql
var Migrations embed.FS

// CreateEmployeesTable は employees テーブルを冪等に作成する DDL です。
//
//go:embed migrations/000001_create_employees.up.sql
var CreateEmployeesTable string
