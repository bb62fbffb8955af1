package store

import (
	"testing"
	"time"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestSaveAndGetSession(t *testing.T) {
	db := newTestDB(t)

	rec := &SessionRecord{
		ID:        "s1",
		Game:      "coinflip",
		Seed:      "deadbeef",
		Player1:   "alice",
		Player2:   "bob",
		Target:    100,
		Completed: 100,
		Winner:    "alice",
		Wins1:     60,
		Wins2:     40,
		CreatedAt: time.Now().UTC(),
	}
	results := []ResultRecord{
		{GameIndex: 0, Winner: "alice", Details: `{"face":"heads"}`},
		{GameIndex: 1, Winner: "bob", Details: `{"face":"tails"}`},
	}

	if err := db.SaveSession(rec, results); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := db.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Winner != "alice" || got.Wins1 != 60 || got.Completed != 100 {
		t.Errorf("retrieved session = %+v", got)
	}

	stored, err := db.GetResults("s1", 10, 0)
	if err != nil {
		t.Fatalf("GetResults failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d results, want 2", len(stored))
	}
	if stored[0].GameIndex != 0 || stored[1].GameIndex != 1 {
		t.Error("results not in index order")
	}
	if stored[0].Details != `{"face":"heads"}` {
		t.Errorf("details = %q", stored[0].Details)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.GetSession("missing"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestSaveSessionGeneratesID(t *testing.T) {
	db := newTestDB(t)
	rec := &SessionRecord{Game: "rps", Seed: "ab", Player1: "a", Player2: "b", CreatedAt: time.Now().UTC()}
	if err := db.SaveSession(rec, nil); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("SaveSession did not assign an id")
	}
}

func TestListSessions(t *testing.T) {
	db := newTestDB(t)

	games := []string{"coinflip", "rps", "coinflip"}
	for i, game := range games {
		rec := &SessionRecord{
			ID:        string(rune('a' + i)),
			Game:      game,
			Seed:      "seed",
			Player1:   "p1",
			Player2:   "p2",
			Target:    10,
			Completed: 10,
			Winner:    "p1",
			CreatedAt: time.Now().UTC(),
			SettledAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := db.SaveSession(rec, nil); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	all, err := db.ListSessions(SessionsQuery{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if all.TotalCount != 3 || len(all.Sessions) != 3 {
		t.Errorf("list = %d/%d, want 3/3", all.TotalCount, len(all.Sessions))
	}
	// Newest settled first.
	if all.Sessions[0].ID != "c" {
		t.Errorf("first listed session = %s, want c", all.Sessions[0].ID)
	}

	flips, err := db.ListSessions(SessionsQuery{Game: "coinflip", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if flips.TotalCount != 2 {
		t.Errorf("coinflip sessions = %d, want 2", flips.TotalCount)
	}

	paged, err := db.ListSessions(SessionsQuery{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if len(paged.Sessions) != 1 || paged.TotalPages != 2 {
		t.Errorf("page 2 = %d sessions, %d pages", len(paged.Sessions), paged.TotalPages)
	}
}
