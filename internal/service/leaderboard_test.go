package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"steprally/grouphub/internal/model"
)

func (e *testEnv) seedSteps(userID uuid.UUID, day time.Time, steps int64, distance float64) {
	e.steps.days = append(e.steps.days, stepDay{userID: userID, date: day, steps: steps, distance: distance})
}

func TestGetLeaderboardWeekly(t *testing.T) {
	env := newTestEnv(t)
	ada := env.addUser(t, "Ada")
	ben := env.addUser(t, "Ben")
	cem := env.addUser(t, "Cem")
	ctx := context.Background()

	detail := env.createGroup(t, ada, false, model.PeriodWeekly)
	groupID := detail.Group.ID
	for _, id := range []uuid.UUID{ben, cem} {
		if _, err := env.svc.JoinGroup(ctx, id, groupID, *detail.JoinCode); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}

	monday := date(2025, time.March, 10)
	sunday := date(2025, time.March, 16)
	env.seedSteps(ada, monday, 4000, 3000)
	env.seedSteps(ada, sunday, 2000, 1500)
	env.seedSteps(ben, monday, 9000, 7000)
	// Out-of-window records must not count.
	env.seedSteps(ben, date(2025, time.March, 9), 50000, 40000)
	env.seedSteps(cem, date(2025, time.March, 17), 50000, 40000)

	board, err := env.svc.GetLeaderboard(ctx, ada, groupID)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}

	if !board.Period.StartDate.Equal(monday) || !board.Period.EndDate.Equal(sunday) {
		t.Errorf("period: expected [%v, %v], got [%v, %v]",
			monday, sunday, board.Period.StartDate, board.Period.EndDate)
	}
	if len(board.Entries) != 3 {
		t.Fatalf("expected all 3 members on the board, got %d", len(board.Entries))
	}

	first, second, third := board.Entries[0], board.Entries[1], board.Entries[2]
	if first.UserID != ben || first.TotalSteps != 9000 || first.Rank != 1 {
		t.Errorf("first entry wrong: %+v", first)
	}
	if second.UserID != ada || second.TotalSteps != 6000 || second.Rank != 2 {
		t.Errorf("second entry wrong: %+v", second)
	}
	if third.UserID != cem || third.TotalSteps != 0 || third.Rank != 3 {
		t.Errorf("zero-step member must appear with zero, got %+v", third)
	}
	if first.DisplayName != "Ben" {
		t.Errorf("display name: expected Ben, got %q", first.DisplayName)
	}
	if second.TotalDistanceM != 4500 {
		t.Errorf("distance total: expected 4500, got %v", second.TotalDistanceM)
	}
}

func TestGetLeaderboardMembershipRequired(t *testing.T) {
	env := newTestEnv(t)
	ada := env.addUser(t, "Ada")
	eve := env.addUser(t, "Eve")
	detail := env.createGroup(t, ada, true, model.PeriodDaily)

	if _, err := env.svc.GetLeaderboard(context.Background(), eve, detail.Group.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := env.svc.GetLeaderboard(context.Background(), ada, uuid.New()); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestGetLeaderboardStepStoreDown(t *testing.T) {
	env := newTestEnv(t)
	ada := env.addUser(t, "Ada")
	detail := env.createGroup(t, ada, false, model.PeriodDaily)

	env.steps.fail = true
	if _, err := env.svc.GetLeaderboard(context.Background(), ada, detail.Group.ID); !errors.Is(err, ErrStepDataUnavailable) {
		t.Fatalf("expected ErrStepDataUnavailable, got %v", err)
	}
}

func TestGetLeaderboardCached(t *testing.T) {
	env := newTestEnv(t)
	ada := env.addUser(t, "Ada")
	detail := env.createGroup(t, ada, false, model.PeriodDaily)
	ctx := context.Background()
	env.seedSteps(ada, date(2025, time.March, 12), 1234, 900)

	first, err := env.svc.GetLeaderboard(ctx, ada, detail.Group.ID)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	fetches := env.steps.batchQueries

	second, err := env.svc.GetLeaderboard(ctx, ada, detail.Group.ID)
	if err != nil {
		t.Fatalf("cached GetLeaderboard failed: %v", err)
	}
	if env.steps.batchQueries != fetches {
		t.Errorf("second call should be served from cache, step queries went %d -> %d", fetches, env.steps.batchQueries)
	}
	if len(second.Entries) != len(first.Entries) || second.Entries[0].TotalSteps != first.Entries[0].TotalSteps {
		t.Errorf("cached board differs: %+v vs %+v", second.Entries, first.Entries)
	}
}

func TestGetLeaderboardBatchContract(t *testing.T) {
	env := newTestEnv(t)
	ada := env.addUser(t, "Ada")
	detail := env.createGroup(t, ada, false, model.PeriodDaily)
	ctx := context.Background()
	groupID := detail.Group.ID

	for i := 0; i < 7; i++ {
		id := env.addUser(t, "Walker")
		if _, err := env.svc.JoinGroup(ctx, id, groupID, *detail.JoinCode); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}

	listsBefore := env.groups.memberListQueries
	userBatchesBefore := env.users.batchQueries
	stepBatchesBefore := env.steps.batchQueries

	if _, err := env.svc.GetLeaderboard(ctx, ada, groupID); err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}

	if got := env.groups.memberListQueries - listsBefore; got != 1 {
		t.Errorf("membership queries: expected 1, got %d", got)
	}
	if got := env.users.batchQueries - userBatchesBefore; got != 1 {
		t.Errorf("user batch queries: expected 1, got %d", got)
	}
	if got := env.steps.batchQueries - stepBatchesBefore; got != 1 {
		t.Errorf("step batch queries: expected 1, got %d", got)
	}
	if env.users.singleQueries != 0 {
		t.Errorf("per-member user queries: expected 0, got %d", env.users.singleQueries)
	}
}
