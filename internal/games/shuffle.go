package games

// Seeded Fisher-Yates deck shuffle. The accumulator is seeded from the
// character-code sum of the context string and stepped with the classic
// Numerical Recipes linear congruential generator, so a context string
// always produces the same permutation.

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

type lcg struct {
	state uint32
}

// newLCG seeds the generator from the context string's character codes.
func newLCG(context string) *lcg {
	var sum uint32
	for _, b := range []byte(context) {
		sum += uint32(b)
	}
	return &lcg{state: sum}
}

// next returns a float in [0, 1).
func (g *lcg) next() float64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return float64(g.state) / 4294967296.0
}

// shuffledDeck returns all 52 cards in the permutation determined by the
// context string.
func shuffledDeck(context string) []Card {
	deck := make([]Card, deckSize)
	for i := range deck {
		deck[i] = cardFromIndex(i)
	}

	g := newLCG(context)
	for i := deckSize - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		if j > i {
			j = i
		}
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}
