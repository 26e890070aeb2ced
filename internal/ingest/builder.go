package ingest

import (
	"math"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// BuildPlayers assembles one player per data row with a non-empty name.
// A name cell of "-" counts as empty.
// Every other field is optional: performance numbers default to 0, ability
// scalars to the "-" placeholder, and Stats only receives codes whose cell
// was numeric.
func BuildPlayers(table RawTable, index ColumnIndex, vocab Vocabulary) []player.Player {
	out := make([]player.Player, 0, len(table.Rows))
	for _, cells := range table.Rows {
		r := row{cells: cells, index: index}

		name, ok := r.value(vocab.fields[FieldName])
		if !ok || !isPresentName(name) {
			continue
		}

		p := player.Player{
			UID:           r.text(vocab.fields[FieldUID]),
			Name:          name.Text,
			Position:      r.text(vocab.fields[FieldPosition]),
			Club:          r.text(vocab.fields[FieldClub]),
			Age:           r.passthrough(vocab.fields[FieldAge]),
			Height:        r.passthrough(vocab.fields[FieldHeight]),
			Weight:        r.passthrough(vocab.fields[FieldWeight]),
			PreferredFoot: r.passthrough(vocab.fields[FieldPreferredFoot]),
			CA:            r.ability(vocab.fields[FieldCA]),
			PA:            r.ability(vocab.fields[FieldPA]),
			TransferValue: r.ability(vocab.fields[FieldTransferValue]),
			Apps:          r.number(vocab.fields[FieldApps]),
			Goals:         r.number(vocab.fields[FieldGoals]),
			Assists:       r.number(vocab.fields[FieldAssists]),
			AverageRating: r.number(vocab.fields[FieldAverageRating]),
			Stats:         make(player.Stats),
		}

		for _, attr := range vocab.attributes {
			if _, set := p.Stats[attr.Code]; set {
				continue
			}
			if v, ok := r.value(attr.Aliases); ok && v.IsNumber() {
				p.Stats[attr.Code] = int(math.Round(v.Number))
			}
		}
		out = append(out, p)
	}
	return out
}

type row struct {
	cells []string
	index ColumnIndex
}

// value normalizes the cell of the first alias whose column exists in both
// the header and this row.
func (r row) value(aliases []string) (player.Value, bool) {
	pos, ok := r.index.ResolveWithin(len(r.cells), aliases...)
	if !ok {
		return player.Value{}, false
	}
	return NormalizeCell(r.cells[pos]), true
}

// isPresentName rejects empty names and cells that normalized to the zero
// placeholder ("-" or "0").
func isPresentName(v player.Value) bool {
	if v.IsNumber() && v.Number == 0 {
		return false
	}
	return v.Text != ""
}

func (r row) text(aliases []string) string {
	v, _ := r.value(aliases)
	return v.Text
}

func (r row) passthrough(aliases []string) player.Value {
	v, _ := r.value(aliases)
	return v
}

func (r row) number(aliases []string) float64 {
	v, ok := r.value(aliases)
	if !ok || !v.IsNumber() {
		return 0
	}
	return v.Number
}

func (r row) ability(aliases []string) player.Value {
	v, ok := r.value(aliases)
	if !ok || !v.IsNumber() {
		return player.PlaceholderValue()
	}
	return v
}
