// Package session は 1 回分の社員登録セッションのライフサイクルを管理します。
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ogurasousui/employee-registry/internal/adapters/console"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
	"go.uber.org/zap"
)

// 入力プロンプトの文言です。表示順に並んでいます。
const (
	PromptName    = "Enter employee name to insert:"
	PromptEmail   = "Enter employee email:"
	PromptCountry = "Enter employee country:"
	PromptSalary  = "Enter employee salary:"
)

// ErrDatabase は接続、テーブル作成、登録、一覧取得の失敗をまとめる分類です。
var ErrDatabase = errors.New("session: database error")

// Opener は設定済みの接続先に接続し Store を返します。
type Opener func(ctx context.Context) (employee.Store, error)

// Prompter は対話入力の抽象です。console.Prompter が実装します。
type Prompter interface {
	Line(label string) (string, error)
	Float(label string) (float64, error)
	Close() error
}

// Runner は接続からクリーンアップまでを 1 回だけ実行します。
type Runner struct {
	open        Opener
	checkDriver func() error
	prompter    Prompter
	out         io.Writer
	errOut      io.Writer
	logger      *zap.Logger
}

// Option は Runner の任意設定です。
type Option func(*Runner)

// WithDriverCheck は接続開始の表示より前に実行するドライバー確認を設定します。
func WithDriverCheck(check func() error) Option {
	return func(r *Runner) {
		r.checkDriver = check
	}
}

// New は Runner を生成します。prompter は Show のみを使う場合 nil でも構いません。
func New(open Opener, prompter Prompter, out, errOut io.Writer, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		open:     open,
		prompter: prompter,
		out:      out,
		errOut:   errOut,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run は接続、テーブル作成、入力、登録、一覧表示を順に行います。
// 失敗は errOut に報告してから接続と入力元を解放します。返却されるエラーは報告済みです。
func (r *Runner) Run(ctx context.Context) error {
	return r.scope(ctx, "session", func(log *zap.Logger, svc *employee.Service) error {
		in, err := r.readInput()
		if err != nil {
			return fmt.Errorf("read employee input: %w", err)
		}

		if err := r.insert(ctx, log, svc, in); err != nil {
			return err
		}

		return r.display(ctx, log, svc)
	})
}

// Show は入力を求めずに接続、テーブル作成、一覧表示を行います。
func (r *Runner) Show(ctx context.Context) error {
	return r.scope(ctx, "show", func(log *zap.Logger, svc *employee.Service) error {
		return r.display(ctx, log, svc)
	})
}

// scope は body の失敗を報告し、その後で接続、入力元の順に解放します。
func (r *Runner) scope(ctx context.Context, name string, body func(*zap.Logger, *employee.Service) error) (err error) {
	log := r.sessionLogger()
	log.Info(name + " started")
	defer r.closePrompter(log)

	var release func()
	defer func() {
		if release != nil {
			release()
		}
	}()
	defer func() {
		if err == nil {
			return
		}
		log.Info(name+" failed", zap.Stringer("category", Classify(err)), zap.Error(err))
		Report(r.errOut, err)
		err = &reportedError{err: err}
	}()

	var svc *employee.Service
	svc, release, err = r.start(ctx, log)
	if err != nil {
		return err
	}

	return body(log, svc)
}

func (r *Runner) sessionLogger() *zap.Logger {
	return r.logger.With(zap.String("session_id", uuid.NewString()))
}

// start は接続とテーブル作成を行います。接続後に失敗した場合も解放関数を返します。
func (r *Runner) start(ctx context.Context, log *zap.Logger) (*employee.Service, func(), error) {
	if r.checkDriver != nil {
		if err := r.checkDriver(); err != nil {
			return nil, nil, err
		}
	}

	r.println("Connecting to database...")

	store, err := r.open(ctx)
	if err != nil {
		log.Debug("connect failed", zap.Error(err))
		if errors.Is(err, db.ErrUnknownDriver) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: connect: %w", ErrDatabase, err)
	}
	r.println("Connected successfully!")
	log.Info("connected")

	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
			return
		}
		r.println("Database connection closed.")
		log.Info("connection closed")
	}

	svc := employee.NewService(store)
	if err := svc.EnsureSchema(ctx); err != nil {
		return nil, closeStore, fmt.Errorf("%w: create employees table: %w", ErrDatabase, err)
	}
	r.println("Employee table created or already exists.")

	return svc, closeStore, nil
}

func (r *Runner) readInput() (employee.CreateEmployeeInput, error) {
	var in employee.CreateEmployeeInput
	if r.prompter == nil {
		return in, fmt.Errorf("%w: no input source", console.ErrNoInput)
	}

	var err error
	if in.Name, err = r.prompter.Line(PromptName); err != nil {
		return in, err
	}
	if in.Email, err = r.prompter.Line(PromptEmail); err != nil {
		return in, err
	}
	if in.Country, err = r.prompter.Line(PromptCountry); err != nil {
		return in, err
	}
	if in.Salary, err = r.prompter.Float(PromptSalary); err != nil {
		return in, err
	}
	return in, nil
}

// insert は重複メールアドレスのみをその場で処理し、それ以外の失敗は返却します。
func (r *Runner) insert(ctx context.Context, log *zap.Logger, svc *employee.Service, in employee.CreateEmployeeInput) error {
	created, err := svc.CreateEmployee(ctx, in)
	switch {
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		fmt.Fprintf(r.errOut, "Error: Employee with email '%s' already exists!\n", in.Email)
		log.Info("duplicate email", zap.String("email", in.Email))
		return nil
	case err != nil:
		return fmt.Errorf("%w: insert employee: %w", ErrDatabase, err)
	}

	r.println(fmt.Sprintf("Employee '%s' inserted successfully!", created.Name))
	log.Info("employee inserted", zap.Int64("id", created.ID))
	return nil
}

func (r *Runner) display(ctx context.Context, log *zap.Logger, svc *employee.Service) error {
	employees, err := svc.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("%w: list employees: %w", ErrDatabase, err)
	}
	log.Debug("employees listed", zap.Int("count", len(employees)))

	if err := console.RenderTable(r.out, employees); err != nil {
		return fmt.Errorf("render employees table: %w", err)
	}
	return nil
}

func (r *Runner) closePrompter(log *zap.Logger) {
	if r.prompter == nil {
		return
	}
	if err := r.prompter.Close(); err != nil {
		log.Warn("failed to close input", zap.Error(err))
	}
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.out, s)
}
