package games

import (
	"github.com/fairsettle/fairsettle-go/internal/engine"
)

// HighCardGame settles each game by comparing one drawn card per player:
// higher rank wins, suit order breaks rank ties, exact tie when both match.
type HighCardGame struct{}

func init() {
	Register(&HighCardGame{})
}

// Spec returns metadata about the high card game.
func (g *HighCardGame) Spec() GameSpec {
	return GameSpec{
		ID:          "highcard",
		Name:        "High Card",
		Description: "One card per player from a 52-card mapping; rank then suit decides.",
	}
}

// Resolve settles the game at the given index.
func (g *HighCardGame) Resolve(m Matchup, index uint64) (GameResult, error) {
	c1 := cardFromFloat(engine.Derive(m.Seed, "highcard-p1-"+m.SessionID, int(index)))
	c2 := cardFromFloat(engine.Derive(m.Seed, "highcard-p2-"+m.SessionID, int(index)))

	return GameResult{
		Index:  index,
		Winner: winnerOf(m, c1.compare(c2)),
		Details: map[string]any{
			"player1_card": c1.String(),
			"player2_card": c2.String(),
		},
	}, nil
}
