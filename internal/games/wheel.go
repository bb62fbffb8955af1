package games

import (
	"github.com/fairsettle/fairsettle-go/internal/engine"
)

// Wheel layout: 10 segments of alternating ownership, with the last segment
// a tie pocket so spins carry a small push chance.
const wheelSegments = 10

// WheelGame settles each game by a single derived float selecting one wheel
// segment.
type WheelGame struct{}

func init() {
	Register(&WheelGame{})
}

// Spec returns metadata about the wheel game.
func (g *WheelGame) Spec() GameSpec {
	return GameSpec{
		ID:          "wheel",
		Name:        "Wheel Spin",
		Description: "One derived float selects one of 10 segments of alternating ownership.",
	}
}

// Resolve settles the game at the given index.
func (g *WheelGame) Resolve(m Matchup, index uint64) (GameResult, error) {
	v := engine.Derive(m.Seed, "wheel-"+m.SessionID, int(index))
	segment := int(v * wheelSegments)
	if segment >= wheelSegments {
		segment = wheelSegments - 1
	}

	var winner string
	switch {
	case segment == wheelSegments-1:
		winner = TieWinner
	case segment%2 == 0:
		winner = m.Player1
	default:
		winner = m.Player2
	}

	return GameResult{
		Index:  index,
		Winner: winner,
		Details: map[string]any{
			"segment": segment,
		},
	}, nil
}
