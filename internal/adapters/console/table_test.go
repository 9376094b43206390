package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
)

func TestRenderTable_Rows(t *testing.T) {
	t.Parallel()

	spain := "Spain"
	created := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)
	employees := []*employee.Employee{
		{ID: 1, Name: "Ana Gomez", Email: "ana@example.com", Country: &spain, Salary: 54999.5, CreatedAt: created},
		{ID: 2, Name: "Kenji", Email: "kenji@example.com", Salary: 1200},
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, employees); err != nil {
		t.Fatalf("RenderTable returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d:\n%s", len(lines), buf.String())
	}

	equals := strings.Repeat("=", 80)
	if lines[0] != "" || lines[1] != equals || lines[2] != "EMPLOYEES TABLE" || lines[3] != equals {
		t.Fatalf("unexpected banner:\n%s", strings.Join(lines[:4], "\n"))
	}

	header := "ID    NAME                 EMAIL                          COUNTRY         SALARY       CREATED_AT          "
	if lines[4] != header {
		t.Fatalf("unexpected header.\nwant %q\n got %q", header, lines[4])
	}
	if lines[5] != strings.Repeat("-", 80) {
		t.Fatalf("unexpected separator %q", lines[5])
	}

	row := "1     Ana Gomez            ana@example.com                Spain           $54999.50    2024-05-01 09:30:15 "
	if lines[6] != row {
		t.Fatalf("unexpected first row.\nwant %q\n got %q", row, lines[6])
	}
	if !strings.HasPrefix(lines[7], "2     Kenji") || !strings.Contains(lines[7], "$1200.00") {
		t.Fatalf("unexpected second row %q", lines[7])
	}
	if lines[8] != equals {
		t.Fatalf("unexpected footer %q", lines[8])
	}
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := RenderTable(&buf, nil); err != nil {
		t.Fatalf("RenderTable returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, EmptyTableMessage) {
		t.Fatalf("expected empty message, got:\n%s", out)
	}
	if strings.Contains(out, "$") {
		t.Fatalf("expected no data rows, got:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderTable_WriteError(t *testing.T) {
	t.Parallel()

	if err := RenderTable(failingWriter{}, nil); err == nil {
		t.Fatal("expected write error")
	}
}
