package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ogurasousui/employee-registry/internal/platform/db"
)

// Category は最上位で報告する失敗の分類です。
type Category int

const (
	CategoryUnexpected Category = iota
	CategoryDriverMissing
	CategoryDatabase
)

func (c Category) String() string {
	switch c {
	case CategoryDriverMissing:
		return "driver_missing"
	case CategoryDatabase:
		return "database"
	default:
		return "unexpected"
	}
}

// Classify は err を 3 つの分類のいずれかに振り分けます。
func Classify(err error) Category {
	switch {
	case errors.Is(err, db.ErrUnknownDriver):
		return CategoryDriverMissing
	case errors.Is(err, ErrDatabase), errors.Is(err, db.ErrConnection):
		return CategoryDatabase
	default:
		return CategoryUnexpected
	}
}

// reportedError は Runner が既に Report 済みのエラーです。
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported は err が Runner によって報告済みかを返します。
func IsReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

// Report は分類ごとの診断メッセージと原因を w に書き込みます。err が nil の場合は何もしません。
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	switch Classify(err) {
	case CategoryDriverMissing:
		fmt.Fprintln(w, "Database driver not found!")
		fmt.Fprintf(w, "Make sure database.driver is one of: %s\n", strings.Join(db.SupportedDrivers(), ", "))
	case CategoryDatabase:
		fmt.Fprintln(w, "Database connection error!")
		fmt.Fprintln(w, "Check your database endpoint, credentials, and network settings")
	default:
		fmt.Fprintln(w, "Unexpected error occurred!")
	}
	fmt.Fprintf(w, "Cause: %v\n", err)
}
