package service

import (
	"testing"

	"github.com/google/uuid"

	"steprally/grouphub/internal/model"
)

func entry(id byte, steps int64) model.LeaderboardEntry {
	var raw [16]byte
	raw[15] = id
	return model.LeaderboardEntry{UserID: uuid.UUID(raw), TotalSteps: steps}
}

func TestRankEntriesDenseTies(t *testing.T) {
	entries := rankEntries([]model.LeaderboardEntry{
		entry(3, 50),
		entry(1, 100),
		entry(2, 100),
	})

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Tied 100s share rank 1, the 50 continues at rank 2 (dense).
	if entries[0].Rank != 1 || entries[1].Rank != 1 {
		t.Errorf("tied leaders should both have rank 1, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
	if entries[2].Rank != 2 {
		t.Errorf("next tier should have rank 2, got %d", entries[2].Rank)
	}
	if entries[2].TotalSteps != 50 {
		t.Errorf("lowest total should sort last, got %d", entries[2].TotalSteps)
	}
}

func TestRankEntriesTieBreakByUserID(t *testing.T) {
	a, b := entry(1, 100), entry(2, 100)

	for i := 0; i < 5; i++ {
		got := rankEntries([]model.LeaderboardEntry{b, a})
		if got[0].UserID != a.UserID {
			t.Fatalf("run %d: expected lower userID first on tie, got %s", i, got[0].UserID)
		}
	}
}

func TestRankEntriesZeroMembersIncluded(t *testing.T) {
	entries := rankEntries([]model.LeaderboardEntry{
		entry(1, 0),
		entry(2, 7000),
		entry(3, 0),
	})

	if entries[0].TotalSteps != 7000 || entries[0].Rank != 1 {
		t.Errorf("expected walker first with rank 1, got %+v", entries[0])
	}
	if entries[1].Rank != 2 || entries[2].Rank != 2 {
		t.Errorf("zero-step members share dense rank 2, got %d and %d", entries[1].Rank, entries[2].Rank)
	}
}

func TestRankEntriesEmpty(t *testing.T) {
	if got := rankEntries([]model.LeaderboardEntry{}); len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
}
