// Package games contains the per-game resolvers that turn derived floats
// into settled outcomes between two parties.
//
// Every resolver is a pure function of (master seed, session id, game index,
// player labels): resolving index k never depends on indices below k, which
// is what makes batch replay, resuming, and auditing possible.
package games

import "sort"

// TieWinner is the winner label recorded when neither party wins a game.
const TieWinner = "tie"

// Matchup identifies one settlement run: the shared master seed, the session
// id that namespaces this run's derivation contexts, and the two party
// labels. Player labels are free text used only as winner tokens.
type Matchup struct {
	Seed      string `json:"seed"`
	SessionID string `json:"session_id"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
}

// GameResult is one resolved outcome. Winner is one of the two player labels
// or TieWinner. Details carries game-specific payload (cards, moves, wheel
// segment) for display and auditing.
type GameResult struct {
	Index   uint64         `json:"index"`
	Winner  string         `json:"winner"`
	Details map[string]any `json:"details,omitempty"`
}

// GameSpec describes a registered game for listing endpoints.
type GameSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Game is a resolver for one game family.
type Game interface {
	// Spec returns metadata about the game.
	Spec() GameSpec

	// Resolve settles the game at the given index. It must be
	// deterministic and order-independent across indices.
	Resolve(m Matchup, index uint64) (GameResult, error)
}

var registry = make(map[string]Game)

// Register adds a game to the registry. Called from init functions.
func Register(g Game) {
	registry[g.Spec().ID] = g
}

// Get retrieves a game by id.
func Get(id string) (Game, bool) {
	g, ok := registry[id]
	return g, ok
}

// List returns the specs of all registered games, sorted by id.
func List() []GameSpec {
	specs := make([]GameSpec, 0, len(registry))
	for _, g := range registry {
		specs = append(specs, g.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}

// winnerOf maps a comparison outcome to a winner label: positive favors
// player1, negative favors player2, zero is a tie.
func winnerOf(m Matchup, cmp int) string {
	switch {
	case cmp > 0:
		return m.Player1
	case cmp < 0:
		return m.Player2
	default:
		return TieWinner
	}
}
