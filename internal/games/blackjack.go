package games

import (
	"strconv"

	"github.com/fairsettle/fairsettle-go/internal/engine"
)

// BlackjackGame deals both players a simplified dealer-rule hand: hit until
// 17 or bust, unlimited deck. Each game index gets its own card stream so
// hands of different lengths never bleed into neighboring games.
type BlackjackGame struct{}

const blackjackStand = 17

func init() {
	Register(&BlackjackGame{})
}

// Spec returns metadata about the blackjack game.
func (g *BlackjackGame) Spec() GameSpec {
	return GameSpec{
		ID:          "blackjack",
		Name:        "Blackjack",
		Description: "Both hands hit until 17 or bust; closer to 21 wins.",
	}
}

// Resolve settles the game at the given index.
func (g *BlackjackGame) Resolve(m Matchup, index uint64) (GameResult, error) {
	context := "blackjack-" + m.SessionID + "-" + strconv.FormatUint(index, 10)

	// draw returns the nth card of this game's private stream.
	draw := func(n int) Card {
		return cardFromFloat(engine.Derive(m.Seed, context, n))
	}

	// Standard deal order: p1, p2, p1, p2, then each hand finishes in turn.
	hand1 := []Card{draw(0), draw(2)}
	hand2 := []Card{draw(1), draw(3)}

	next := 4
	for blackjackHandValue(hand1) < blackjackStand {
		hand1 = append(hand1, draw(next))
		next++
	}
	for blackjackHandValue(hand2) < blackjackStand {
		hand2 = append(hand2, draw(next))
		next++
	}

	v1 := blackjackHandValue(hand1)
	v2 := blackjackHandValue(hand2)

	cmp := 0
	switch {
	case v1 > 21 && v2 > 21:
		cmp = 0
	case v1 > 21:
		cmp = -1
	case v2 > 21:
		cmp = 1
	default:
		cmp = v1 - v2
	}

	return GameResult{
		Index:  index,
		Winner: winnerOf(m, cmp),
		Details: map[string]any{
			"player1_cards": cardStrings(hand1),
			"player2_cards": cardStrings(hand2),
			"player1_value": v1,
			"player2_value": v2,
			"player1_bust":  v1 > 21,
			"player2_bust":  v2 > 21,
		},
	}, nil
}

// blackjackHandValue totals a hand with soft aces: aces count 11 until the
// hand would bust, then downgrade to 1 one at a time.
func blackjackHandValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		switch {
		case c.Rank == 14:
			total += 11
			aces++
		case c.Rank > 10:
			total += 10
		default:
			total += c.Rank
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
