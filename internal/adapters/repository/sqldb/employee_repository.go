// Package sqldb は database/sql と lib/pq による社員リポジトリを提供します。
package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ogurasousui/employee-registry/assets"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	platformsql "github.com/ogurasousui/employee-registry/internal/platform/db/sqldb"
)

const uniqueViolationCode pq.ErrorCode = "23505"

const (
	insertEmployeeQuery = `
        INSERT INTO employees (name, email, country, salary)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, email, country, salary, created_at
    `

	listEmployeesQuery = `
        SELECT id, name, email, country, salary, created_at
          FROM employees
         ORDER BY id
    `
)

// EmployeeRepository は lib/pq を利用した社員永続化の実装です。
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Open は lib/pq で接続し EmployeeRepository を返します。
func Open(ctx context.Context, cfg config.DatabaseConfig) (*EmployeeRepository, error) {
	db, err := platformsql.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewEmployeeRepository(db), nil
}

// EnsureSchema は employees テーブルが無ければ作成します。
func (r *EmployeeRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, assets.CreateEmployeesTable)
	return err
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var country sql.NullString
	if e.Country != nil {
		country = sql.NullString{String: *e.Country, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, insertEmployeeQuery, e.Name, e.Email, country, e.Salary)
	created, err := scanEmployee(row)
	if err != nil {
		return nil, translatePqError(err)
	}
	return created, nil
}

// List は全社員を ID の昇順で返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, listEmployeesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// Close は接続を解放します。
func (r *EmployeeRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var (
		emp       employee.Employee
		country   sql.NullString
		salary    sql.NullFloat64
		createdAt sql.NullTime
	)

	if err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &country, &salary, &createdAt); err != nil {
		return nil, err
	}

	if country.Valid {
		value := country.String
		emp.Country = &value
	}
	emp.Salary = salary.Float64
	if createdAt.Valid {
		emp.CreatedAt = createdAt.Time
	}

	return &emp, nil
}

func translatePqError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return employee.ErrEmailAlreadyExists
	}
	return err
}
