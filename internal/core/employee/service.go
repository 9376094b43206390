package employee

import (
	"context"
)

// Service は社員に関するユースケースをまとめます。
// 入力値の検証はデータベースの制約に委ねます。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Name    string
	Email   string
	Country string
	Salary  float64
}

// EnsureSchema は employees テーブルを冪等に作成します。
func (s *Service) EnsureSchema(ctx context.Context) error {
	if s.repo == nil {
		return ErrNilRepository
	}
	return s.repo.EnsureSchema(ctx)
}

// CreateEmployee は新しい社員を登録します。
// メールアドレスが重複している場合は ErrEmailAlreadyExists を返します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	if s.repo == nil {
		return nil, ErrNilRepository
	}

	emp := &Employee{
		Name:    in.Name,
		Email:   in.Email,
		Country: normalizeCountry(in.Country),
		Salary:  in.Salary,
	}

	return s.repo.Create(ctx, emp)
}

// ListEmployees は全社員を ID の昇順で取得します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	if s.repo == nil {
		return nil, ErrNilRepository
	}

	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []*Employee{}
	}
	return employees, nil
}

// 空文字の国は未設定 (NULL) として扱います。空白は入力どおり保持します。
func normalizeCountry(raw string) *string {
	if raw == "" {
		return nil
	}
	country := raw
	return &country
}
