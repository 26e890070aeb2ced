package lineup

import (
	"fmt"
	"strings"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// Line is the pitch band a slot is drawn in, goal to attack.
type Line int

const (
	LineGoalkeeper Line = iota
	LineDefence
	LineMidfield
	LineAttackingMidfield
	LineAttack
)

// Slot is one position of a formation. Code is matched as a plain,
// case-insensitive substring of the player's free-text Position, so a
// combined position such as "D (RLC)" fills none of the "D (L)", "D (C)" or
// "D (R)" slots, while "AM (C)" also qualifies for "M (C)".
type Slot struct {
	Key  string `json:"key"`
	Code string `json:"code"`
	Line Line   `json:"line"`
}

// Formation is an ordered list of eleven slots.
type Formation struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

const DefaultFormation = "4-3-3"

var back4 = []Slot{
	{Key: "GK", Code: "GK", Line: LineGoalkeeper},
	{Key: "LB", Code: "D (L)", Line: LineDefence},
	{Key: "LCB", Code: "D (C)", Line: LineDefence},
	{Key: "RCB", Code: "D (C)", Line: LineDefence},
	{Key: "RB", Code: "D (R)", Line: LineDefence},
}

var formations = map[string][]Slot{
	"4-3-3": {
		{Key: "LCM", Code: "M (C)", Line: LineMidfield},
		{Key: "RCM", Code: "M (C)", Line: LineMidfield},
		{Key: "AMC", Code: "AM (C)", Line: LineAttackingMidfield},
		{Key: "AML", Code: "AM (L)", Line: LineAttackingMidfield},
		{Key: "AMR", Code: "AM (R)", Line: LineAttackingMidfield},
		{Key: "ST", Code: "ST", Line: LineAttack},
	},
	"4-4-2": {
		{Key: "LM", Code: "M (L)", Line: LineMidfield},
		{Key: "LCM", Code: "M (C)", Line: LineMidfield},
		{Key: "RCM", Code: "M (C)", Line: LineMidfield},
		{Key: "RM", Code: "M (R)", Line: LineMidfield},
		{Key: "LST", Code: "ST", Line: LineAttack},
		{Key: "RST", Code: "ST", Line: LineAttack},
	},
	"4-2-3-1": {
		{Key: "LDM", Code: "DM", Line: LineMidfield},
		{Key: "RDM", Code: "DM", Line: LineMidfield},
		{Key: "AML", Code: "AM (L)", Line: LineAttackingMidfield},
		{Key: "AMC", Code: "AM (C)", Line: LineAttackingMidfield},
		{Key: "AMR", Code: "AM (R)", Line: LineAttackingMidfield},
		{Key: "ST", Code: "ST", Line: LineAttack},
	},
}

// FormationByName returns a copy of a registered formation. An empty name
// selects DefaultFormation.
func FormationByName(name string) (Formation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFormation
	}
	rest, ok := formations[name]
	if !ok {
		return Formation{}, fmt.Errorf("unknown formation %q", name)
	}
	slots := make([]Slot, 0, len(back4)+len(rest))
	slots = append(slots, back4...)
	slots = append(slots, rest...)
	return Formation{Name: name, Slots: slots}, nil
}

// FormationNames lists registered formations, default first.
func FormationNames() []string {
	return []string{"4-3-3", "4-4-2", "4-2-3-1"}
}

// Assignment is a slot and the player picked for it, if any.
type Assignment struct {
	Slot   Slot           `json:"slot"`
	Player *player.Player `json:"player,omitempty"`
}

func (a Assignment) Filled() bool { return a.Player != nil }
