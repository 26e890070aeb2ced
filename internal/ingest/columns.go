package ingest

import (
	"math"
	"strings"
)

// NormalizeKey lowercases s and keeps only ASCII letters and digits, so
// "Av Rat" and "avrat" resolve to the same column.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ColumnIndex maps normalized header keys to column positions.
type ColumnIndex struct {
	positions map[string]int
}

// NewColumnIndex indexes header labels. When two labels normalize to the
// same key the later column wins. Labels with no letters or digits are
// ignored.
func NewColumnIndex(header []string) ColumnIndex {
	positions := make(map[string]int, len(header))
	for i, label := range header {
		key := NormalizeKey(label)
		if key == "" {
			continue
		}
		positions[key] = i
	}
	return ColumnIndex{positions: positions}
}

// Resolve returns the column of the first alias present in the header.
func (c ColumnIndex) Resolve(aliases ...string) (int, bool) {
	return c.ResolveWithin(math.MaxInt, aliases...)
}

// ResolveWithin is Resolve for a row of rowLen cells: aliases whose column
// lies past the end of the row are skipped.
func (c ColumnIndex) ResolveWithin(rowLen int, aliases ...string) (int, bool) {
	for _, alias := range aliases {
		if pos, ok := c.positions[NormalizeKey(alias)]; ok && pos < rowLen {
			return pos, true
		}
	}
	return 0, false
}

// Len is the number of distinct keys.
func (c ColumnIndex) Len() int {
	return len(c.positions)
}
