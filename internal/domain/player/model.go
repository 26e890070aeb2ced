package player

import (
	"fmt"
	"strings"
)

// DefaultAvatarBaseURL hosts player face images keyed by UID.
const DefaultAvatarBaseURL = "https://img.fminside.net/facesfm26/"

// Stats holds attribute values that were present and numeric in the export.
// A missing code means the export had no such column or no number in it.
type Stats map[AttributeCode]int

func (s Stats) Clone() Stats {
	if s == nil {
		return nil
	}
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Lookup returns the value for code and whether it is present.
func (s Stats) Lookup(code AttributeCode) (int, bool) {
	v, ok := s[code]
	return v, ok
}

// Player is one normalized row of a season export.
type Player struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Club     string `json:"club"`
	Age      Value  `json:"age"`

	Height        Value `json:"height"`
	Weight        Value `json:"weight"`
	PreferredFoot Value `json:"preferredFoot"`

	CA            Value `json:"ca"`
	PA            Value `json:"pa"`
	TransferValue Value `json:"transferValue"`

	Apps          float64 `json:"apps"`
	Goals         float64 `json:"goals"`
	Assists       float64 `json:"assists"`
	AverageRating float64 `json:"averageRating"`

	Stats Stats `json:"stats"`
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}

// IsGoalkeeper reports whether the free-text position lists a GK role.
func (p Player) IsGoalkeeper() bool {
	return strings.Contains(strings.ToUpper(p.Position), "GK")
}

// AvatarURL joins base and UID. Players without UID have no avatar.
func (p Player) AvatarURL(base string) string {
	if p.UID == "" {
		return ""
	}
	if base == "" {
		base = DefaultAvatarBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + p.UID + ".png"
}

func (p Player) Clone() Player {
	p.Stats = p.Stats.Clone()
	return p
}

func CloneAll(players []Player) []Player {
	if players == nil {
		return nil
	}
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

// MatchesName is a case-insensitive substring match on Name.
func (p Player) MatchesName(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
}
