package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gamehubfc/managerhub/internal/domain/lineup"
	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/ingest"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

const radarBarWidth = 10

// radarBar draws ratio (0..1) as a fixed width bar.
func radarBar(ratio float64) string {
	filled := int(math.Round(ratio * radarBarWidth))
	return strings.Repeat("#", filled) + strings.Repeat(".", radarBarWidth-filled)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderPlayers lists players in upload order.
func RenderPlayers(w io.Writer, players []player.Player) error {
	table := NewTable("#", "Name", "Position", "Club", "CA", "Apps", "Gls", "Ast", "Rating")
	for i, p := range players {
		table.AddRow(
			strconv.Itoa(i),
			p.Name,
			p.Position,
			p.Club,
			p.CA.String(),
			formatFloat(p.Apps),
			formatFloat(p.Goals),
			formatFloat(p.Assists),
			strconv.FormatFloat(p.AverageRating, 'f', 2, 64),
		)
	}
	if _, err := table.WriteTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d players\n", len(players))
	return err
}

// RenderBestEleven prints one line per slot; empty slots show "-".
func RenderBestEleven(w io.Writer, formation lineup.Formation, slots []lineup.Assignment) error {
	if _, err := fmt.Fprintf(w, "Formation %s\n\n", formation.Name); err != nil {
		return err
	}

	table := NewTable("Slot", "Player", "Position", "CA")
	for _, a := range slots {
		if !a.Filled() {
			table.AddRow(a.Slot.Key, "-", "", "")
			continue
		}
		table.AddRow(a.Slot.Key, a.Player.Name, a.Player.Position, a.Player.CA.String())
	}
	_, err := table.WriteTo(w)
	return err
}

func RenderProfile(w io.Writer, profile usecase.PlayerProfile) error {
	p := profile.Player
	if _, err := fmt.Fprintf(w, "%s  %s  %s\n", p.Name, p.Position, p.Club); err != nil {
		return err
	}
	if profile.AvatarURL != "" {
		if _, err := fmt.Fprintf(w, "avatar: %s\n", profile.AvatarURL); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	radarTable := NewTable("Axis", "Value", "Scale")
	for _, axis := range profile.Radar {
		radarTable.AddRow(axis.Label, strconv.FormatFloat(axis.Value, 'f', 1, 64), radarBar(axis.Ratio()))
	}
	if _, err := radarTable.WriteTo(w); err != nil {
		return err
	}
	if len(profile.Attributes) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	attrTable := NewTable("Code", "Attribute", "Category", "Value", "Rating")
	for _, a := range profile.Attributes {
		attrTable.AddRow(string(a.Code), a.Name, string(a.Category), strconv.Itoa(a.Value), string(a.Rating))
	}
	_, err := attrTable.WriteTo(w)
	return err
}

// RenderVocabulary lists the header spellings each field and attribute
// code is recognised by.
func RenderVocabulary(w io.Writer, vocab ingest.Vocabulary) error {
	table := NewTable("Column", "Kind", "Headers")
	for _, f := range vocab.Fields() {
		table.AddRow(string(f), "field", strings.Join(vocab.Aliases(f), ", "))
	}
	for _, a := range vocab.Attributes() {
		table.AddRow(string(a.Code), "attribute", strings.Join(a.Aliases, ", "))
	}
	_, err := table.WriteTo(w)
	return err
}
