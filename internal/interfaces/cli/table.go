// Package cli renders ingestion results as plain text tables for the
// managerhub command.
package cli

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

// Table is a left aligned text table. Rows shorter than the header are
// padded with empty cells, longer rows are truncated.
type Table struct {
	header []string
	rows   [][]string
}

func NewTable(header ...string) *Table {
	return &Table{header: header}
}

func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.header))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// WriteTo writes the header, a rule and every row.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	widths := t.widths()
	writeLine(buf, t.header, widths)

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	writeLine(buf, rule, widths)

	for _, row := range t.rows {
		writeLine(buf, row, widths)
	}

	n, err := w.Write(buf.B)
	return int64(n), err
}

func writeLine(buf *bytebufferpool.ByteBuffer, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			_, _ = buf.WriteString("  ")
		}
		_, _ = buf.WriteString(cell)
		if i < len(cells)-1 {
			pad := widths[i] - utf8.RuneCountInString(cell)
			for range pad {
				_ = buf.WriteByte(' ')
			}
		}
	}
	_ = buf.WriteByte('\n')
}
