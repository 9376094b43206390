// Package console は標準入力からの対話入力と社員一覧の表形式出力を提供します。
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrNoInput は値を読む前に入力が終了した場合に返却されます。
	ErrNoInput = errors.New("console: no input")
	// ErrInvalidNumber は数値として解釈できない入力の場合に返却されます。
	ErrInvalidNumber = errors.New("console: invalid number")
)

// Prompter はラベルを表示して 1 行ずつ入力を読み取ります。
type Prompter struct {
	reader *bufio.Reader
	source io.Reader
	out    io.Writer

	closeOnce sync.Once
	closeErr  error
}

// NewPrompter は Prompter を生成します。in が io.Closer の場合は Close で閉じられます。
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		source: in,
		out:    out,
	}
}

// Line はラベルを表示し、改行を除いた 1 行を返します。
// 最終行が改行で終わらない場合もその内容を返します。
func (p *Prompter) Line(label string) (string, error) {
	if err := p.prompt(label); err != nil {
		return "", err
	}
	return p.readLine(label)
}

// Float はラベルを表示し、最初のトークンを数値として返します。
// トークンが現れるまで空行は読み飛ばします。
func (p *Prompter) Float(label string) (float64, error) {
	if err := p.prompt(label); err != nil {
		return 0, err
	}

	var fields []string
	for len(fields) == 0 {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		fields = strings.Fields(line)
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, fields[0])
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, fields[0])
	}

	return value, nil
}

func (p *Prompter) prompt(label string) error {
	if _, err := fmt.Fprint(p.out, label+" "); err != nil {
		return fmt.Errorf("console: write prompt: %w", err)
	}
	return nil
}

func (p *Prompter) readLine(label string) (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("console: read %q: %w", label, err)
		}
		if line == "" {
			return "", fmt.Errorf("%w: %s", ErrNoInput, label)
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Close は入力元を一度だけ閉じます。2 回目以降は最初の結果を返します。
func (p *Prompter) Close() error {
	p.closeOnce.Do(func() {
		if closer, ok := p.source.(io.Closer); ok {
			p.closeErr = closer.Close()
		}
	})
	return p.closeErr
}
