// Package gormdb は gorm による社員リポジトリを提供します。
package gormdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/ogurasousui/employee-registry/assets"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	platformgorm "github.com/ogurasousui/employee-registry/internal/platform/db/gormdb"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

const insertEmployeeQuery = `
        INSERT INTO employees (name, email, country, salary)
        VALUES (?, ?, ?, ?)
        RETURNING id, name, email, country, salary, created_at
    `

// employeeRecord は employees テーブルの 1 行です。
type employeeRecord struct {
	ID        int64
	Name      string
	Email     string
	Country   sql.NullString
	Salary    sql.NullFloat64
	CreatedAt sql.NullTime
}

func (employeeRecord) TableName() string { return "employees" }

func (r employeeRecord) toEntity() *employee.Employee {
	emp := &employee.Employee{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Salary: r.Salary.Float64,
	}
	if r.Country.Valid {
		country := r.Country.String
		emp.Country = &country
	}
	if r.CreatedAt.Valid {
		emp.CreatedAt = r.CreatedAt.Time
	}
	return emp
}

// EmployeeRepository は gorm を利用した社員永続化の実装です。
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Open は gorm で接続し EmployeeRepository を返します。
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*EmployeeRepository, error) {
	db, err := platformgorm.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewEmployeeRepository(db), nil
}

// EnsureSchema は employees テーブルが無ければ作成します。
// AutoMigrate は列定義を変更し得るため、固定の DDL を実行します。
func (r *EmployeeRepository) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(assets.CreateEmployeesTable).Error
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var record employeeRecord
	err := r.db.WithContext(ctx).
		Raw(insertEmployeeQuery, e.Name, e.Email, e.Country, e.Salary).
		Scan(&record).Error
	if err != nil {
		return nil, translatePgError(err)
	}
	return record.toEntity(), nil
}

// List は全社員を ID の昇順で返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var records []employeeRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(records))
	for _, record := range records {
		employees = append(employees, record.toEntity())
	}
	return employees, nil
}

// Close は gorm が保持する接続を解放します。
func (r *EmployeeRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gorm の postgres ドライバーは pgx v4 系のため、pgconn v1 の PgError を判定します。
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return employee.ErrEmailAlreadyExists
	}
	return err
}
