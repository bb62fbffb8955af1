package games

import "testing"

func hand(cards ...Card) []Card { return cards }

func TestClassifyHand(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want HandCategory
	}{
		{
			"high card",
			hand(Card{2, "spade"}, Card{5, "heart"}, Card{9, "club"}, Card{11, "diamond"}, Card{13, "spade"}),
			HighCardHand,
		},
		{
			"pair",
			hand(Card{9, "spade"}, Card{9, "heart"}, Card{2, "club"}, Card{5, "diamond"}, Card{13, "spade"}),
			Pair,
		},
		{
			"two pair",
			hand(Card{9, "spade"}, Card{9, "heart"}, Card{5, "club"}, Card{5, "diamond"}, Card{13, "spade"}),
			TwoPair,
		},
		{
			"three of a kind",
			hand(Card{9, "spade"}, Card{9, "heart"}, Card{9, "club"}, Card{5, "diamond"}, Card{13, "spade"}),
			ThreeOfAKind,
		},
		{
			"straight",
			hand(Card{5, "spade"}, Card{6, "heart"}, Card{7, "club"}, Card{8, "diamond"}, Card{9, "spade"}),
			Straight,
		},
		{
			"wheel straight",
			hand(Card{14, "spade"}, Card{2, "heart"}, Card{3, "club"}, Card{4, "diamond"}, Card{5, "spade"}),
			Straight,
		},
		{
			"flush",
			hand(Card{2, "heart"}, Card{5, "heart"}, Card{9, "heart"}, Card{11, "heart"}, Card{13, "heart"}),
			Flush,
		},
		{
			"full house",
			hand(Card{9, "spade"}, Card{9, "heart"}, Card{9, "club"}, Card{5, "diamond"}, Card{5, "spade"}),
			FullHouse,
		},
		{
			"four of a kind",
			hand(Card{9, "spade"}, Card{9, "heart"}, Card{9, "club"}, Card{9, "diamond"}, Card{5, "spade"}),
			FourOfAKind,
		},
		{
			"straight flush",
			hand(Card{5, "club"}, Card{6, "club"}, Card{7, "club"}, Card{8, "club"}, Card{9, "club"}),
			StraightFlush,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyHand(tt.hand)
			if got.Category != tt.want {
				t.Errorf("classifyHand = %s, want %s", got.Category, tt.want)
			}
		})
	}
}

func TestHandRankCompare(t *testing.T) {
	pairNines := classifyHand(hand(Card{9, "spade"}, Card{9, "heart"}, Card{2, "club"}, Card{5, "diamond"}, Card{13, "spade"}))
	pairFives := classifyHand(hand(Card{5, "spade"}, Card{5, "heart"}, Card{2, "club"}, Card{9, "diamond"}, Card{13, "spade"}))
	flush := classifyHand(hand(Card{2, "heart"}, Card{5, "heart"}, Card{9, "heart"}, Card{11, "heart"}, Card{13, "heart"}))

	if pairNines.compare(pairFives) <= 0 {
		t.Error("pair of nines should beat pair of fives")
	}
	if flush.compare(pairNines) <= 0 {
		t.Error("flush should beat a pair")
	}
	if pairNines.compare(pairNines) != 0 {
		t.Error("identical hands should tie")
	}

	// Kicker decides between equal pairs.
	pairNinesAce := classifyHand(hand(Card{9, "spade"}, Card{9, "heart"}, Card{2, "club"}, Card{5, "diamond"}, Card{14, "spade"}))
	if pairNinesAce.compare(pairNines) <= 0 {
		t.Error("ace kicker should beat king kicker")
	}
}

func TestShuffledDeckIsPermutation(t *testing.T) {
	deck := shuffledDeck("poker-s1-0")
	if len(deck) != deckSize {
		t.Fatalf("deck has %d cards", len(deck))
	}
	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card %s in shuffled deck", c)
		}
		seen[c] = true
	}
}

func TestShuffledDeckDeterministic(t *testing.T) {
	a := shuffledDeck("poker-s1-3")
	b := shuffledDeck("poker-s1-3")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same context produced different shuffles")
		}
	}

	c := shuffledDeck("poker-s1-4")
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different contexts produced identical shuffles")
	}
}

func TestPokerResolve(t *testing.T) {
	g := &PokerGame{}
	m := testMatchup()

	for i := uint64(0); i < 50; i++ {
		res, err := g.Resolve(m, i)
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", i, err)
		}
		p1 := res.Details["player1_cards"].([]string)
		p2 := res.Details["player2_cards"].([]string)
		if len(p1) != 5 || len(p2) != 5 {
			t.Fatalf("index %d: hand sizes %d/%d", i, len(p1), len(p2))
		}

		// Both hands come off one shuffle: no card may appear twice.
		seen := make(map[string]bool)
		for _, c := range append(append([]string{}, p1...), p2...) {
			if seen[c] {
				t.Fatalf("index %d: card %s dealt twice", i, c)
			}
			seen[c] = true
		}
	}
}
