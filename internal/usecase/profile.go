package usecase

import (
	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/domain/radar"
)

// AttributeView is one attribute row of a player profile.
type AttributeView struct {
	Code     player.AttributeCode `json:"code"`
	Name     string               `json:"name"`
	Category player.Category      `json:"category"`
	Value    int                  `json:"value"`
	Rating   player.Rating        `json:"rating"`
}

// PlayerProfile is the detail view of one player.
type PlayerProfile struct {
	Player     player.Player   `json:"player"`
	AvatarURL  string          `json:"avatarUrl,omitempty"`
	Goalkeeper bool            `json:"goalkeeper"`
	Radar      []radar.Axis    `json:"radar"`
	Attributes []AttributeView `json:"attributes"`
}

// BuildProfile lists only attributes present in Stats, in profile order.
func BuildProfile(p player.Player, avatarBase string) PlayerProfile {
	attrs := make([]AttributeView, 0, len(p.Stats))
	for _, a := range player.Attributes() {
		v, ok := p.Stats.Lookup(a.Code)
		if !ok {
			continue
		}
		attrs = append(attrs, AttributeView{
			Code:     a.Code,
			Name:     a.Name,
			Category: a.Category,
			Value:    v,
			Rating:   player.RateAttribute(v),
		})
	}
	return PlayerProfile{
		Player:     p,
		AvatarURL:  p.AvatarURL(avatarBase),
		Goalkeeper: p.IsGoalkeeper(),
		Radar:      radar.Compute(p),
		Attributes: attrs,
	}
}
