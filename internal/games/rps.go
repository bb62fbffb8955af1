package games

import (
	"github.com/fairsettle/fairsettle-go/internal/engine"
)

// Move is one of the three rock-paper-scissors throws.
type Move int

const (
	Rock Move = iota
	Paper
	Scissors
)

var moveNames = [...]string{"rock", "paper", "scissors"}

func (m Move) String() string {
	if m < Rock || m > Scissors {
		return "unknown"
	}
	return moveNames[m]
}

// Beats reports whether m defeats other under the fixed relation:
// rock beats scissors, scissors beats paper, paper beats rock.
func (m Move) Beats(other Move) bool {
	switch m {
	case Rock:
		return other == Scissors
	case Scissors:
		return other == Paper
	case Paper:
		return other == Rock
	default:
		return false
	}
}

// RPSGame settles each game by two independently derived moves.
type RPSGame struct{}

func init() {
	Register(&RPSGame{})
}

// Spec returns metadata about the rock-paper-scissors game.
func (g *RPSGame) Spec() GameSpec {
	return GameSpec{
		ID:          "rps",
		Name:        "Rock Paper Scissors",
		Description: "Two independent derivation streams pick one of three moves each.",
	}
}

// Resolve settles the game at the given index.
func (g *RPSGame) Resolve(m Matchup, index uint64) (GameResult, error) {
	m1 := moveFromFloat(engine.Derive(m.Seed, "rps-p1-"+m.SessionID, int(index)))
	m2 := moveFromFloat(engine.Derive(m.Seed, "rps-p2-"+m.SessionID, int(index)))

	cmp := 0
	switch {
	case m1.Beats(m2):
		cmp = 1
	case m2.Beats(m1):
		cmp = -1
	}

	return GameResult{
		Index:  index,
		Winner: winnerOf(m, cmp),
		Details: map[string]any{
			"player1_move": m1.String(),
			"player2_move": m2.String(),
		},
	}, nil
}

func moveFromFloat(v float64) Move {
	mv := Move(v * 3)
	if mv > Scissors {
		mv = Scissors
	}
	return mv
}
