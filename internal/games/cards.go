package games

// Card is one of the 52 playing cards, identified by its deck index.
// Index layout: suit = index / 13, rank = index % 13 + 2 (ace high = 14).
type Card struct {
	Rank int    `json:"rank"` // 2..14, ace = 14
	Suit string `json:"suit"` // "spade", "heart", "diamond", "club"
}

// Suits in tie-break order: spade beats heart beats diamond beats club.
var cardSuits = []string{"spade", "heart", "diamond", "club"}

var rankNames = map[int]string{
	11: "J", 12: "Q", 13: "K", 14: "A",
}

// suitGlyphs for display strings like "♠A".
var suitGlyphs = map[string]string{
	"spade": "♠", "heart": "♥", "diamond": "♦", "club": "♣",
}

const deckSize = 52

// cardFromIndex decomposes a deck index in [0, 51] into a Card.
func cardFromIndex(index int) Card {
	if index < 0 {
		index = 0
	}
	if index >= deckSize {
		index = deckSize - 1
	}
	return Card{
		Rank: index%13 + 2,
		Suit: cardSuits[index/13],
	}
}

// cardFromFloat maps a derived float in (0, 1) to a card via floor(v*52).
func cardFromFloat(v float64) Card {
	return cardFromIndex(int(v * deckSize))
}

// suitOrder returns the tie-break strength of a suit; lower is stronger.
func suitOrder(suit string) int {
	for i, s := range cardSuits {
		if s == suit {
			return i
		}
	}
	return len(cardSuits)
}

// compare orders two cards: rank first, then suit. Positive means c beats
// other.
func (c Card) compare(other Card) int {
	if c.Rank != other.Rank {
		return c.Rank - other.Rank
	}
	return suitOrder(other.Suit) - suitOrder(c.Suit)
}

// String renders a card like "♠A" or "♦10".
func (c Card) String() string {
	name, ok := rankNames[c.Rank]
	if !ok {
		name = itoa(c.Rank)
	}
	return suitGlyphs[c.Suit] + name
}

func itoa(n int) string {
	if n == 10 {
		return "10"
	}
	return string(rune('0' + n))
}

func cardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
