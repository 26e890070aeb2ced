package usecase

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

type exportRow struct {
	UID, Name, Position string
	CA                  string
	Goals, Assists      int
	Rating              string
	Finishing, Pace     string
}

// exportHTML renders a minimal season export with a th header row.
func exportHTML(rows ...exportRow) []byte {
	var b strings.Builder
	b.WriteString("<html><body><table>")
	b.WriteString("<tr><th>UID</th><th>Name</th><th>Position</th><th>Club</th><th>CA</th><th>Gls</th><th>Ast</th><th>Av Rat</th><th>Fin</th><th>Pac</th></tr>")
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>GameHub FC</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			r.UID, r.Name, r.Position, r.CA, r.Goals, r.Assists, r.Rating, r.Finishing, r.Pace)
	}
	b.WriteString("</table></body></html>")
	return []byte(b.String())
}

func sampleExport() []byte {
	return exportHTML(
		exportRow{UID: "1001", Name: "Alan Keeper", Position: "GK", CA: "140", Rating: "6.9", Finishing: "2", Pace: "9"},
		exportRow{UID: "1002", Name: "Bruno Striker", Position: "ST", CA: "155", Goals: 21, Assists: 4, Rating: "7.4", Finishing: "17", Pace: "15"},
		exportRow{UID: "1003", Name: "Carlos Winger", Position: "AM (RL)", CA: "-", Goals: 8, Assists: 12, Rating: "7.1", Finishing: "12", Pace: "18"},
	)
}

type sequenceIDs struct {
	next atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("season-%d", g.next.Add(1)), nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) now() time.Time { return c.at }
