package ingest

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

func htmlTable(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<html><body><table><tr>")
	for _, h := range header {
		b.WriteString("<th>" + h + "</th>")
	}
	b.WriteString("</tr>")
	for _, r := range rows {
		b.WriteString("<tr>")
		for _, c := range r {
			b.WriteString("<td>" + c + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func TestParse_DropsUnnamedRows(t *testing.T) {
	t.Parallel()

	html := htmlTable(
		[]string{"UID", "Name", "Position", "CA", "PA", "Finishing"},
		[]string{"1001", "John Doe", "ST", "150", "180", "17"},
		[]string{"", "", "", "", "", ""},
	)

	res := Parse(html)
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)

	p := res.Players[0]
	assert.Equal(t, "1001", p.UID)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "ST", p.Position)
	assert.Equal(t, player.KindNumber, p.CA.Kind)
	assert.Equal(t, 150.0, p.CA.Number)
	assert.Equal(t, 180.0, p.PA.Number)
	assert.Equal(t, player.Stats{player.Finishing: 17}, p.Stats)
	assert.Equal(t, 6, res.Columns)
}

func TestParse_DashIsZeroNotMissing(t *testing.T) {
	t.Parallel()

	res := Parse(htmlTable(
		[]string{"Name", "Club", "Age", "Apps", "Gls", "Finishing"},
		[]string{"Dash Player", "FC", "22", "-", "3", "-"},
	))
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)

	p := res.Players[0]
	fin, ok := p.Stats[player.Finishing]
	require.True(t, ok, "Fin must be present")
	assert.Equal(t, 0, fin)
	assert.Equal(t, 0.0, p.Apps)
	assert.Equal(t, 3.0, p.Goals)
}

func TestParse_DashNameIsDropped(t *testing.T) {
	t.Parallel()

	res := Parse(htmlTable(
		[]string{"Name", "Position", "Gls"},
		[]string{"-", "ST", "4"},
		[]string{"0", "GK", "0"},
		[]string{"Kept Player", "M (C)", "2"},
	))
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)
	assert.Equal(t, "Kept Player", res.Players[0].Name)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	res := Parse(htmlTable(
		[]string{"Name", "Position", "Club", "Foot", "Height", "Transfer Value"},
		[]string{"Only Name", "D (C)", "United", "Left", "188 cm", "£1.2M"},
	))
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)

	p := res.Players[0]
	assert.Equal(t, "", p.UID)
	assert.Equal(t, player.PlaceholderValue(), p.CA)
	assert.Equal(t, player.PlaceholderValue(), p.PA)
	assert.Equal(t, player.PlaceholderValue(), p.TransferValue)
	assert.Equal(t, 0.0, p.AverageRating)
	assert.Equal(t, player.Text("Left"), p.PreferredFoot)
	assert.Equal(t, player.Text("188 cm"), p.Height)
	assert.True(t, p.Age.IsEmpty())
	assert.Empty(t, p.Stats)
}

func TestParse_StatsOnlyHoldNumericCells(t *testing.T) {
	t.Parallel()

	res := Parse(htmlTable(
		[]string{"Name", "Position", "Fin", "Pac", "Tck", "Cro"},
		[]string{"Mixed", "ST", "14", "fast", "", "12.6"},
	))
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)

	assert.Equal(t, player.Stats{player.Finishing: 14, player.Crossing: 13}, res.Players[0].Stats)
}

func TestParse_ShortRowsLeaveFieldsUnresolved(t *testing.T) {
	t.Parallel()

	res := Parse(htmlTable(
		[]string{"Name", "Club", "Age", "CA", "PA", "Fin"},
		[]string{"Short Row", "FC"},
	))
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)

	p := res.Players[0]
	assert.Equal(t, "FC", p.Club)
	assert.Equal(t, player.PlaceholderValue(), p.CA)
	assert.Empty(t, p.Stats)
}

func TestParse_AliasSymmetry(t *testing.T) {
	t.Parallel()

	row := []string{"77", "Twin", "Rovers", "130", "150", "21", "6", "4", "7.05", "15", "11", "13", "16"}
	short := Parse(htmlTable(
		[]string{"UID", "Name", "Club", "CA", "PA", "Apps", "Gls", "Ast", "Av Rat", "Fin", "Tck", "OtB", "1v1"},
		row,
	))
	long := Parse(htmlTable(
		[]string{"Unique ID", "Name", "Team", "Current Ability", "Potential Ability", "Appearances", "Goals", "Assists", "Average Rating", "Finishing", "Tackling", "Off the Ball", "One on Ones"},
		row,
	))

	require.NoError(t, short.Err)
	require.NoError(t, long.Err)
	require.Len(t, short.Players, 1)
	assert.Equal(t, short.Players, long.Players)
	assert.Equal(t, 7.05, short.Players[0].AverageRating)
	assert.Equal(t, 13, short.Players[0].Stats[player.OffTheBall])
}

func TestParse_IsIdempotent(t *testing.T) {
	t.Parallel()

	html := htmlTable(
		[]string{"Name", "Position", "Fin", "Pac", "Dec", "Vis"},
		[]string{"A", "ST", "15", "14", "12", "-"},
		[]string{"B", "GK", "3", "9", "13", "10"},
	)
	assert.Equal(t, Parse(html), Parse(html))
}

func TestParse_NonHTMLIsEmpty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "just some text", "<<<>>> </tr><td>", "{\"json\":true}"} {
		res := Parse(input)
		assert.NoError(t, res.Err, input)
		assert.Empty(t, res.Players, input)
	}
}

func TestParseReader_ReadFailure(t *testing.T) {
	t.Parallel()

	diskErr := errors.New("disk gone")
	res := defaultParser.ParseReader(iotest.ErrReader(diskErr))

	require.True(t, res.Failed())
	assert.NotNil(t, res.Players)
	assert.Empty(t, res.Players)

	var pe *ParseError
	require.ErrorAs(t, res.Err, &pe)
	assert.Equal(t, StageExtract, pe.Stage)
	assert.ErrorIs(t, res.Err, diskErr)
}

type panicReader struct{}

func (panicReader) Read([]byte) (int, error) {
	panic("reader exploded")
}

func TestParseReader_RecoversPanics(t *testing.T) {
	t.Parallel()

	res := defaultParser.ParseReader(panicReader{})
	require.True(t, res.Failed())
	assert.Empty(t, res.Players)
	assert.Contains(t, res.Err.Error(), "reader exploded")
}

func TestParser_CustomVocabulary(t *testing.T) {
	t.Parallel()

	vocab, err := NewVocabulary(
		map[Field][]string{FieldName: {"Spieler"}, FieldClub: {"Verein"}},
		[]AttributeAliases{{Code: player.Finishing, Aliases: []string{"Abschluss"}}},
	)
	require.NoError(t, err)

	res := NewParser(vocab).Parse(htmlTable(
		[]string{"Spieler", "Verein", "Abschluss", "Name", "X", "Y"},
		[]string{"Müller", "Bayern", "16", "ignored", "", ""},
	))
	require.NoError(t, res.Err)
	require.Len(t, res.Players, 1)
	assert.Equal(t, "Müller", res.Players[0].Name)
	assert.Equal(t, "Bayern", res.Players[0].Club)
	assert.Equal(t, player.Stats{player.Finishing: 16}, res.Players[0].Stats)
}
