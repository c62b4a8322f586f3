package service

import (
	"sort"

	"steprally/grouphub/internal/model"
)

// rankEntries orders entries by total steps descending with userID as a
// deterministic tie-break, then assigns dense 1-based ranks: tied totals
// share a rank and the next distinct total takes the previous rank + 1.
// The input slice is sorted in place and returned.
func rankEntries(entries []model.LeaderboardEntry) []model.LeaderboardEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalSteps != entries[j].TotalSteps {
			return entries[i].TotalSteps > entries[j].TotalSteps
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})

	rank := 0
	var prevSteps int64
	for i := range entries {
		if i == 0 || entries[i].TotalSteps != prevSteps {
			rank++
			prevSteps = entries[i].TotalSteps
		}
		entries[i].Rank = rank
	}
	return entries
}
