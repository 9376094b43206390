package session

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ogurasousui/employee-registry/internal/platform/db"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want Category
	}{
		{"unknown driver", fmt.Errorf("%w %q", db.ErrUnknownDriver, "mysql"), CategoryDriverMissing},
		{"wrapped database", fmt.Errorf("%w: insert employee: boom", ErrDatabase), CategoryDatabase},
		{"connection", fmt.Errorf("%w: ping", db.ErrConnection), CategoryDatabase},
		{"other", errors.New("console: invalid number"), CategoryUnexpected},
	}

	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: want %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err      error
		headline string
		guidance string
	}{
		{fmt.Errorf("%w %q", db.ErrUnknownDriver, "mysql"), "Database driver not found!", "gorm, pgx, postgres"},
		{fmt.Errorf("%w: connect: refused", ErrDatabase), "Database connection error!", "credentials"},
		{errors.New("boom"), "Unexpected error occurred!", ""},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		Report(&buf, tc.err)

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if lines[0] != tc.headline {
			t.Errorf("want headline %q, got %q", tc.headline, lines[0])
		}
		if tc.guidance != "" && !strings.Contains(buf.String(), tc.guidance) {
			t.Errorf("expected guidance containing %q:\n%s", tc.guidance, buf.String())
		}
		if want := "Cause: " + tc.err.Error(); lines[len(lines)-1] != want {
			t.Errorf("want %q, got %q", want, lines[len(lines)-1])
		}
	}
}

func TestReport_NilError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Report(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
