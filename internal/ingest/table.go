package ingest

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// headerMinCells is the th count a row must exceed to be taken as header.
const headerMinCells = 5

// RawTable is the extracted header and the trimmed td texts of every data
// row. Rows can be shorter than Header.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ExtractTable reads an HTML document and flattens every tr in document
// order, whatever table it belongs to. The header is the first row with
// more than five th cells, or the first row when none qualifies. A document
// without rows yields an empty table.
func ExtractTable(r io.Reader) (RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return RawTable{}, errors.Wrap(err, "read html document")
	}

	rows := doc.Find("tr")
	if rows.Length() == 0 {
		return RawTable{}, nil
	}

	headerIdx := 0
	rows.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Find("th").Length() > headerMinCells {
			headerIdx = i
			return false
		}
		return true
	})

	table := RawTable{
		Header: cellTexts(rows.Eq(headerIdx).Find("th, td")),
		Rows:   make([][]string, 0, rows.Length()-headerIdx-1),
	}
	rows.Slice(headerIdx+1, rows.Length()).Each(func(_ int, s *goquery.Selection) {
		table.Rows = append(table.Rows, cellTexts(s.Find("td")))
	})
	return table, nil
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
