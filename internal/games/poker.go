package games

import (
	"sort"
	"strconv"
)

// PokerGame deals five cards to each player from a single seeded shuffle of
// the full deck, then compares standard hand rankings.
type PokerGame struct{}

func init() {
	Register(&PokerGame{})
}

// Spec returns metadata about the poker game.
func (g *PokerGame) Spec() GameSpec {
	return GameSpec{
		ID:          "poker",
		Name:        "Five Card Poker",
		Description: "Seeded deck shuffle deals 5+5; standard hand ranking decides.",
	}
}

// Resolve settles the game at the given index.
func (g *PokerGame) Resolve(m Matchup, index uint64) (GameResult, error) {
	context := "poker-" + m.SessionID + "-" + strconv.FormatUint(index, 10)
	deck := shuffledDeck(context)

	// Alternating deal off the top of the shuffled deck.
	var hand1, hand2 []Card
	for i := 0; i < 10; i += 2 {
		hand1 = append(hand1, deck[i])
		hand2 = append(hand2, deck[i+1])
	}

	r1 := classifyHand(hand1)
	r2 := classifyHand(hand2)

	return GameResult{
		Index:  index,
		Winner: winnerOf(m, r1.compare(r2)),
		Details: map[string]any{
			"player1_cards": cardStrings(hand1),
			"player2_cards": cardStrings(hand2),
			"player1_hand":  r1.Category.String(),
			"player2_hand":  r2.Category.String(),
		},
	}, nil
}

// HandCategory orders poker hands from weakest to strongest.
type HandCategory int

const (
	HighCardHand HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handNames = [...]string{
	"high card", "pair", "two pair", "three of a kind", "straight",
	"flush", "full house", "four of a kind", "straight flush",
}

func (c HandCategory) String() string {
	if c < HighCardHand || c > StraightFlush {
		return "unknown"
	}
	return handNames[c]
}

// handRank is a classified hand: category plus tiebreak ranks ordered from
// most to least significant (e.g. for two pair: high pair, low pair,
// kicker).
type handRank struct {
	Category  HandCategory
	Tiebreaks []int
}

func (r handRank) compare(other handRank) int {
	if r.Category != other.Category {
		return int(r.Category) - int(other.Category)
	}
	for i := 0; i < len(r.Tiebreaks) && i < len(other.Tiebreaks); i++ {
		if r.Tiebreaks[i] != other.Tiebreaks[i] {
			return r.Tiebreaks[i] - other.Tiebreaks[i]
		}
	}
	return 0
}

// classifyHand classifies a 5-card hand into its category and tiebreaks.
func classifyHand(hand []Card) handRank {
	ranks := make([]int, len(hand))
	flush := true
	for i, c := range hand {
		ranks[i] = c.Rank
		if c.Suit != hand[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	straightHigh, straight := straightHighCard(ranks)

	counts := make(map[int]int)
	for _, r := range ranks {
		counts[r]++
	}

	// Group ranks by multiplicity, higher counts first, then higher ranks.
	type group struct{ rank, count int }
	groups := make([]group, 0, len(counts))
	for r, c := range counts {
		groups = append(groups, group{r, c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	tiebreaks := make([]int, 0, len(groups))
	for _, g := range groups {
		tiebreaks = append(tiebreaks, g.rank)
	}

	switch {
	case straight && flush:
		return handRank{StraightFlush, []int{straightHigh}}
	case groups[0].count == 4:
		return handRank{FourOfAKind, tiebreaks}
	case groups[0].count == 3 && groups[1].count == 2:
		return handRank{FullHouse, tiebreaks}
	case flush:
		return handRank{Flush, ranks}
	case straight:
		return handRank{Straight, []int{straightHigh}}
	case groups[0].count == 3:
		return handRank{ThreeOfAKind, tiebreaks}
	case groups[0].count == 2 && groups[1].count == 2:
		return handRank{TwoPair, tiebreaks}
	case groups[0].count == 2:
		return handRank{Pair, tiebreaks}
	default:
		return handRank{HighCardHand, ranks}
	}
}

// straightHighCard detects a five-high-to-ace-high straight in descending
// ranks, including the wheel (A-2-3-4-5, which plays as five high).
func straightHighCard(desc []int) (int, bool) {
	if len(desc) != 5 {
		return 0, false
	}
	run := true
	for i := 1; i < 5; i++ {
		if desc[i] != desc[i-1]-1 {
			run = false
			break
		}
	}
	if run {
		return desc[0], true
	}
	// Wheel: A 5 4 3 2.
	if desc[0] == 14 && desc[1] == 5 && desc[2] == 4 && desc[3] == 3 && desc[4] == 2 {
		return 5, true
	}
	return 0, false
}
