package lineup

import (
	"sort"
	"strings"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// BestEleven fills every slot of formation with the highest rated eligible
// player. The n-th slot sharing a position code takes the n-th best
// candidate for that code. Ties keep the input order. Slots without a
// candidate stay empty.
func BestEleven(players []player.Player, formation Formation) []Assignment {
	ranked := make(map[string][]int, len(formation.Slots))
	taken := make(map[string]int, len(formation.Slots))

	out := make([]Assignment, 0, len(formation.Slots))
	for _, slot := range formation.Slots {
		candidates, ok := ranked[slot.Code]
		if !ok {
			candidates = rankCandidates(players, slot.Code)
			ranked[slot.Code] = candidates
		}

		rank := taken[slot.Code]
		taken[slot.Code] = rank + 1

		a := Assignment{Slot: slot}
		if rank < len(candidates) {
			picked := players[candidates[rank]].Clone()
			a.Player = &picked
		}
		out = append(out, a)
	}
	return out
}

// rankCandidates returns indexes of players eligible for code, best first.
func rankCandidates(players []player.Player, code string) []int {
	needle := strings.ToUpper(code)
	idx := make([]int, 0, len(players))
	for i, p := range players {
		if strings.Contains(strings.ToUpper(p.Position), needle) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return players[idx[a]].AverageRating > players[idx[b]].AverageRating
	})
	return idx
}
