// Package radar aggregates attribute codes into the six axes of a player
// radar chart.
package radar

import (
	"github.com/gamehubfc/managerhub/internal/domain/player"
)

const (
	// MaxValue is the fixed outer ring of every axis.
	MaxValue = 20
	// MissingValue stands in for codes absent from a player's Stats.
	MissingValue = 5
)

// group is one radar axis and the codes averaged into it.
type group struct {
	Key   string
	Label string
	Codes []player.AttributeCode
}

var outfieldGroups = []group{
	{Key: "ATT", Label: "Attacking", Codes: []player.AttributeCode{player.Finishing, player.LongShots, player.OffTheBall}},
	{Key: "TEC", Label: "Technical", Codes: []player.AttributeCode{player.Technique, player.Dribbling, player.Passing}},
	{Key: "TAC", Label: "Tactical", Codes: []player.AttributeCode{player.Decisions, player.Anticipation, player.Vision}},
	{Key: "DEF", Label: "Defensive", Codes: []player.AttributeCode{player.Tackling, player.Marking, player.Positioning}},
	{Key: "PHY", Label: "Physical", Codes: []player.AttributeCode{player.Pace, player.Acceleration, player.Strength}},
	{Key: "CRE", Label: "Creative", Codes: []player.AttributeCode{player.Flair, player.Vision, player.Crossing}},
}

var goalkeeperGroups = []group{
	{Key: "AER", Label: "Aerial", Codes: []player.AttributeCode{player.AerialReach, player.JumpingReach}},
	{Key: "DIS", Label: "Distribution", Codes: []player.AttributeCode{player.Kicking, player.Throwing, player.Passing}},
	{Key: "CMD", Label: "Command", Codes: []player.AttributeCode{player.CommandOfArea, player.Communication, player.RushingOut}},
	{Key: "SHO", Label: "Shot Stopping", Codes: []player.AttributeCode{player.Reflexes, player.OneOnOnes, player.Handling}},
	{Key: "PHY", Label: "Physical", Codes: []player.AttributeCode{player.Agility, player.Balance, player.Strength}},
	{Key: "MEN", Label: "Mental", Codes: []player.AttributeCode{player.Concentration, player.Positioning, player.Decisions}},
}

// Axis is one computed point of the chart.
type Axis struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Ratio places the value on the chart scale, clamped to [0, 1].
func (a Axis) Ratio() float64 {
	r := a.Value / MaxValue
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// groupsFor picks the goalkeeper set for GK positions and the outfield set
// otherwise.
func groupsFor(p player.Player) []group {
	if p.IsGoalkeeper() {
		return goalkeeperGroups
	}
	return outfieldGroups
}

// Compute returns one axis per group in chart order. Stats is only read.
func Compute(p player.Player) []Axis {
	groups := groupsFor(p)
	out := make([]Axis, 0, len(groups))
	for _, g := range groups {
		out = append(out, Axis{Key: g.Key, Label: g.Label, Value: average(p.Stats, g.Codes)})
	}
	return out
}

func average(stats player.Stats, codes []player.AttributeCode) float64 {
	if len(codes) == 0 {
		return 0
	}
	total := 0
	for _, code := range codes {
		v, ok := stats.Lookup(code)
		if !ok {
			v = MissingValue
		}
		total += v
	}
	return float64(total) / float64(len(codes))
}
