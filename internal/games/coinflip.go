package games

import (
	"strconv"

	"github.com/fairsettle/fairsettle-go/internal/engine"
)

// AssignmentSpan is the number of consecutive games sharing one side
// assignment. Rotating the assignment every span keeps neither player bound
// to one face for a whole run while the resolver stays a pure function of
// the game index.
const AssignmentSpan = 10

// CoinFlipGame settles each game by a single coin face. Side assignment
// comes from its own derivation stream so it can rotate across batches
// independently of the flip outcomes.
type CoinFlipGame struct{}

func init() {
	Register(&CoinFlipGame{})
}

// Spec returns metadata about the coin flip game.
func (g *CoinFlipGame) Spec() GameSpec {
	return GameSpec{
		ID:          "coinflip",
		Name:        "Coin Flip",
		Description: "One derived face per game; side assignment rotates every " + strconv.Itoa(AssignmentSpan) + " games.",
	}
}

// Resolve settles the coin flip at the given index.
func (g *CoinFlipGame) Resolve(m Matchup, index uint64) (GameResult, error) {
	assignIndex := int(index / AssignmentSpan)
	assign := engine.Derive(m.Seed, "assignment-"+m.SessionID, assignIndex)
	p1Heads := assign < 0.5

	v := engine.Derive(m.Seed, "flip-"+m.SessionID, int(index))
	heads := v < 0.5

	face := "tails"
	if heads {
		face = "heads"
	}
	p1Side, p2Side := "tails", "heads"
	if p1Heads {
		p1Side, p2Side = "heads", "tails"
	}

	winner := m.Player2
	if heads == p1Heads {
		winner = m.Player1
	}

	return GameResult{
		Index:  index,
		Winner: winner,
		Details: map[string]any{
			"face":         face,
			"player1_side": p1Side,
			"player2_side": p2Side,
		},
	}, nil
}
