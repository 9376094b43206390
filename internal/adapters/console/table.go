package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
)

const (
	tableWidth      = 80
	createdAtLayout = "2006-01-02 15:04:05"

	headerFormat = "%-5s %-20s %-30s %-15s %-12s %-20s\n"
	rowFormat    = "%-5d %-20s %-30s %-15s $%-11.2f %-20s\n"

	// EmptyTableMessage は社員が 1 件も無い場合に表示されます。
	EmptyTableMessage = "No employees found in the database."
)

// RenderTable は社員一覧を固定幅の表として w に書き込みます。
func RenderTable(w io.Writer, employees []*employee.Employee) error {
	tw := &tableWriter{w: w}

	tw.println("")
	tw.println(strings.Repeat("=", tableWidth))
	tw.println("EMPLOYEES TABLE")
	tw.println(strings.Repeat("=", tableWidth))
	tw.printf(headerFormat, "ID", "NAME", "EMAIL", "COUNTRY", "SALARY", "CREATED_AT")
	tw.println(strings.Repeat("-", tableWidth))

	for _, emp := range employees {
		tw.printf(rowFormat,
			emp.ID,
			emp.Name,
			emp.Email,
			emp.CountryOrEmpty(),
			emp.Salary,
			formatCreatedAt(emp),
		)
	}
	if len(employees) == 0 {
		tw.println(EmptyTableMessage)
	}

	tw.println(strings.Repeat("=", tableWidth))
	return tw.err
}

func formatCreatedAt(emp *employee.Employee) string {
	if emp.CreatedAt.IsZero() {
		return ""
	}
	return emp.CreatedAt.Format(createdAtLayout)
}

// tableWriter は最初の書き込みエラーを保持し、以降の出力を行いません。
type tableWriter struct {
	w   io.Writer
	err error
}

func (t *tableWriter) println(s string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, s)
}

func (t *tableWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
