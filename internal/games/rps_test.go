package games

import "testing"

func TestMoveBeats(t *testing.T) {
	tests := []struct {
		a, b Move
		want bool
	}{
		{Rock, Scissors, true},
		{Scissors, Paper, true},
		{Paper, Rock, true},
		{Scissors, Rock, false},
		{Paper, Scissors, false},
		{Rock, Paper, false},
		{Rock, Rock, false},
		{Paper, Paper, false},
		{Scissors, Scissors, false},
	}

	for _, tt := range tests {
		if got := tt.a.Beats(tt.b); got != tt.want {
			t.Errorf("%s.Beats(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRPSGolden(t *testing.T) {
	want := []struct {
		m1, m2 string
		winner string
	}{
		{"rock", "scissors", "p1"},
		{"paper", "scissors", "p2"},
		{"paper", "paper", TieWinner},
		{"rock", "scissors", "p1"},
		{"scissors", "rock", "p2"},
		{"paper", "paper", TieWinner},
	}

	g := &RPSGame{}
	m := testMatchup()
	for i, w := range want {
		res, err := g.Resolve(m, uint64(i))
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", i, err)
		}
		if res.Details["player1_move"] != w.m1 || res.Details["player2_move"] != w.m2 {
			t.Errorf("index %d: moves = %v vs %v, want %s vs %s",
				i, res.Details["player1_move"], res.Details["player2_move"], w.m1, w.m2)
		}
		if res.Winner != w.winner {
			t.Errorf("index %d: winner = %s, want %s", i, res.Winner, w.winner)
		}
	}
}

func TestMoveFromFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want Move
	}{
		{0.01, Rock},
		{0.33, Rock},
		{0.34, Paper},
		{0.66, Paper},
		{0.67, Scissors},
		{0.999999, Scissors},
	}
	for _, tt := range tests {
		if got := moveFromFloat(tt.v); got != tt.want {
			t.Errorf("moveFromFloat(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
