package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-registry/assets"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	pgdb "github.com/ogurasousui/employee-registry/internal/platform/db/postgres"
)

const (
	uniqueViolationCode = "23505"

	// closeTimeout は接続解放時に Terminate メッセージ送信を待つ上限です。
	closeTimeout = 5 * time.Second
)

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

// EmployeeRepository は pgx を利用した社員永続化の実装です。
type EmployeeRepository struct {
	conn pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(conn pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{conn: conn}
}

// EnsureSchema は employees テーブルが無ければ作成します。
func (r *EmployeeRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.Exec(ctx, assets.CreateEmployeesTable); err != nil {
		return err
	}
	return nil
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	row := r.conn.QueryRow(ctx, insertEmployeeQuery, e.Name, e.Email, e.Country, e.Salary)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// List は全社員を ID の昇順で返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := r.conn.Query(ctx, listEmployeesQuery)
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

// Store は単一の pgx 接続を所有する EmployeeRepository です。
type Store struct {
	*EmployeeRepository
	conn pgdb.Conn
}

// NewStore は接続を所有する Store を生成します。
func NewStore(conn pgdb.Conn) *Store {
	return &Store{
		EmployeeRepository: NewEmployeeRepository(conn),
		conn:               conn,
	}
}

// Open は pgx で接続し Store を返します。
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	conn, err := pgdb.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(conn), nil
}

// Close は接続を解放します。
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return s.conn.Close(ctx)
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id        int64
		name      string
		email     string
		country   sql.NullString
		salary    sql.NullFloat64
		createdAt sql.NullTime
	)

	if err := row.Scan(&id, &name, &email, &country, &salary, &createdAt); err != nil {
		return nil, err
	}

	emp := &employee.Employee{
		ID:     id,
		Name:   name,
		Email:  email,
		Salary: salary.Float64,
	}
	if country.Valid {
		value := country.String
		emp.Country = &value
	}
	if createdAt.Valid {
		emp.CreatedAt = createdAt.Time
	}

	return emp, nil
}

func translateEmployeePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return employee.ErrEmailAlreadyExists
	}
	return err
}
