package employee

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeEmployeeRepo struct {
	employees   map[int64]*Employee
	sequence    int64
	schemaCalls int
	schemaErr   error
	createErr   error
	now         time.Time
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: make(map[int64]*Employee),
		now:       time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func (r *fakeEmployeeRepo) EnsureSchema(_ context.Context) error {
	r.schemaCalls++
	return r.schemaErr
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *Employee) (*Employee, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.employees {
		if existing.Email == e.Email {
			return nil, ErrEmailAlreadyExists
		}
	}

	clone := cloneEmployee(e)
	r.sequence++
	clone.ID = r.sequence
	clone.CreatedAt = r.now
	r.employees[clone.ID] = clone
	return cloneEmployee(clone), nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]*Employee, error) {
	if len(r.employees) == 0 {
		return nil, nil
	}
	out := make([]*Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		out = append(out, cloneEmployee(emp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneEmployee(emp *Employee) *Employee {
	if emp == nil {
		return nil
	}
	copy := *emp
	if emp.Country != nil {
		country := *emp.Country
		copy.Country = &country
	}
	return &copy
}

func TestService_EnsureSchemaIsRepeatable(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo)

	for i := 0; i < 2; i++ {
		if err := svc.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("EnsureSchema call %d returned error: %v", i+1, err)
		}
	}

	if repo.schemaCalls != 2 {
		t.Fatalf("expected 2 schema calls, got %d", repo.schemaCalls)
	}
}

func TestService_CreateEmployee(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo)

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Name:    "Ana Gomez",
		Email:   "ana@example.com",
		Country: "Spain",
		Salary:  54999.5,
	})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}
	if created.CountryOrEmpty() != "Spain" {
		t.Errorf("unexpected country %q", created.CountryOrEmpty())
	}
	if created.Salary != 54999.5 {
		t.Errorf("unexpected salary %v", created.Salary)
	}
}

func TestService_CreateEmployee_EmptyCountryIsNull(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo())

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Name:    "Kenji",
		Email:   "kenji@example.com",
		Country: "",
	})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if created.Country != nil {
		t.Fatalf("expected nil country, got %q", *created.Country)
	}
}

func TestService_CreateEmployee_WhitespaceCountryIsKept(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo())

	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Name:    "Mei",
		Email:   "mei@example.com",
		Country: "   ",
	})
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if created.Country == nil || *created.Country != "   " {
		t.Fatalf("expected whitespace country to be kept, got %v", created.Country)
	}
}

func TestService_CreateEmployee_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("first CreateEmployee returned error: %v", err)
	}

	_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Other Ana", Email: "ana@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	list, err := svc.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Ana" {
		t.Fatalf("duplicate insert must not change stored rows, got %+v", list)
	}
}

func TestService_CreateEmployee_IDsIncrease(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo())
	ctx := context.Background()

	var last int64
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		created, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: email, Email: email})
		if err != nil {
			t.Fatalf("CreateEmployee(%s) returned error: %v", email, err)
		}
		if created.ID <= last {
			t.Fatalf("expected id greater than %d, got %d", last, created.ID)
		}
		last = created.ID
	}
}

func TestService_CreateEmployee_PropagatesRepositoryError(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	repo.createErr = errors.New("numeric field overflow")
	svc := NewService(repo)

	_, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: "x", Email: "x@example.com"})
	if !errors.Is(err, repo.createErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestService_ListEmployees_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	list, err := NewService(newFakeEmployeeRepo()).ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}

func TestService_NilRepository(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	ctx := context.Background()

	if err := svc.EnsureSchema(ctx); !errors.Is(err, ErrNilRepository) {
		t.Errorf("EnsureSchema: expected ErrNilRepository, got %v", err)
	}
	if _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{}); !errors.Is(err, ErrNilRepository) {
		t.Errorf("CreateEmployee: expected ErrNilRepository, got %v", err)
	}
	if _, err := svc.ListEmployees(ctx); !errors.Is(err, ErrNilRepository) {
		t.Errorf("ListEmployees: expected ErrNilRepository, got %v", err)
	}
}
