package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"steprally/grouphub/internal/model"
)

// GetLeaderboard assembles the ranked standings for the group's current
// competition period. Reads are batched: one membership query, one user
// query, one grouped step-totals query. Results are cached for a short
// TTL; cache trouble degrades to a recompute, never a failure.
func (s *groupService) GetLeaderboard(ctx context.Context, userID, groupID uuid.UUID) (*model.Leaderboard, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireVisibility(ctx, groupID, userID); err != nil {
		return nil, err
	}

	period, err := resolvePeriod(group.PeriodType, s.now())
	if err != nil {
		return nil, err
	}

	cacheKey := leaderboardCacheKey(groupID, period)
	if cached := s.cachedLeaderboard(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	memberships, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	memberIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		memberIDs = append(memberIDs, m.UserID)
	}

	users, err := s.users.GetUsersByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member profiles: %w", err)
	}
	profiles := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		profiles[u.ID] = u
	}

	// One grouped query for the whole member set. A wholesale failure here
	// is fatal; a member simply absent from the result scores zero.
	totals, err := s.steps.GetTotalsForUsers(ctx, memberIDs, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStepDataUnavailable, err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(memberships))
	for _, m := range memberships {
		entry := model.LeaderboardEntry{UserID: m.UserID}
		if u, ok := profiles[m.UserID]; ok {
			entry.DisplayName = u.DisplayName
			entry.AvatarURL = u.AvatarURL
		} else {
			s.logger.Warn("leaderboard member has no user profile",
				zap.String("group_id", groupID.String()),
				zap.String("user_id", m.UserID.String()))
		}
		if t, ok := totals[m.UserID]; ok {
			entry.TotalSteps = t.Steps
			entry.TotalDistanceM = t.DistanceMeters
		}
		entries = append(entries, entry)
	}

	board := &model.Leaderboard{
		GroupID: groupID,
		Period:  period,
		Entries: rankEntries(entries),
	}
	s.storeLeaderboard(ctx, cacheKey, board)
	return board, nil
}

func leaderboardCacheKey(groupID uuid.UUID, period model.CompetitionPeriod) string {
	return fmt.Sprintf("leaderboard:%s:%d:%s",
		groupID, period.PeriodType, period.StartDate.Format(time.DateOnly))
}

func (s *groupService) cachedLeaderboard(ctx context.Context, key string) *model.Leaderboard {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("leaderboard cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if raw == nil {
		return nil
	}
	var board model.Leaderboard
	if err := json.Unmarshal(raw, &board); err != nil {
		s.logger.Warn("leaderboard cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &board
}

func (s *groupService) storeLeaderboard(ctx context.Context, key string, board *model.Leaderboard) {
	raw, err := json.Marshal(board)
	if err != nil {
		s.logger.Warn("leaderboard cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.leaderboardTTL); err != nil {
		s.logger.Warn("leaderboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
