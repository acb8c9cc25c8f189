package session

import (
	"context"
	"sort"

	"github.com/oskarw/mellovote/internal/models"
)

const (
	// topContestantLimit caps the global ranking
	topContestantLimit = 10
	// userTopLimit caps each participant's personal ranking
	userTopLimit = 3
)

// ContestantScore is one contestant's aggregate standing
type ContestantScore struct {
	ID               int                `json:"id"`
	Name             string             `json:"name"`
	CategoryAverages map[string]float64 `json:"category_averages"`
	OverallScore     float64            `json:"overall_score"`
}

// TopPick is one entry in a participant's personal top list
type TopPick struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// UserTopThree is a participant's personal ranking
type UserTopThree struct {
	UserName string    `json:"user_name"`
	TopThree []TopPick `json:"top_three"`
}

// AggregateResult is the full scoring outcome for the current session
type AggregateResult struct {
	TopContestants  []ContestantScore       `json:"top_contestants"`
	UserTopThree    map[string]UserTopThree `json:"user_top_three"`
	TotalVoters     int                     `json:"total_voters"`
	ResultsRevealed bool                    `json:"results_revealed"`
}

// ComputeResults aggregates the vote matrix into rankings. Passing a
// non-empty userID narrows the per-user ranking map to that user. Read-only.
func (m *Manager) ComputeResults(ctx context.Context, userID string) *AggregateResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return computeResults(m.record, userID)
}

// computeResults is a pure function over a consistent record snapshot.
//
// Two deliberately different formulas are in play. The global overall score
// always divides by the fixed category count, so an un-judged category pulls
// a contestant toward 0. A participant's personal score for a contestant
// divides by however many categories that participant actually scored.
func computeResults(record *models.SessionRecord, userFilter string) *AggregateResult {
	categoryIDs := models.CategoryIDs()

	type tally struct {
		total int
		count int
	}

	// Per-contestant, per-category running sums. Votes for contestants no
	// longer on the roster are orphans: kept in the matrix, skipped here.
	tallies := make(map[int]map[string]*tally, len(record.Contestants))
	for _, c := range record.Contestants {
		byCategory := make(map[string]*tally, len(categoryIDs))
		for _, catID := range categoryIDs {
			byCategory[catID] = &tally{}
		}
		tallies[c.ID] = byCategory
	}

	for _, set := range record.Votes {
		for contestantID, byCategory := range set {
			contestantTallies, ok := tallies[contestantID]
			if !ok {
				continue
			}
			for categoryID, score := range byCategory {
				if t, ok := contestantTallies[categoryID]; ok {
					t.total += score
					t.count++
				}
			}
		}
	}

	scores := make([]ContestantScore, 0, len(record.Contestants))
	for _, c := range record.Contestants {
		averages := make(map[string]float64, len(categoryIDs))
		sum := 0.0
		for _, catID := range categoryIDs {
			t := tallies[c.ID][catID]
			avg := 0.0
			if t.count > 0 {
				avg = float64(t.total) / float64(t.count)
			}
			averages[catID] = avg
			sum += avg
		}
		scores = append(scores, ContestantScore{
			ID:               c.ID,
			Name:             c.Name,
			CategoryAverages: averages,
			OverallScore:     sum / float64(len(categoryIDs)),
		})
	}

	// Descending by score, ties broken by ascending contestant id
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].OverallScore != scores[j].OverallScore {
			return scores[i].OverallScore > scores[j].OverallScore
		}
		return scores[i].ID < scores[j].ID
	})
	if len(scores) > topContestantLimit {
		scores = scores[:topContestantLimit]
	}

	names := make(map[int]string, len(record.Contestants))
	for _, c := range record.Contestants {
		names[c.ID] = c.Name
	}

	userTop := make(map[string]UserTopThree)
	totalVoters := 0
	for uid, set := range record.Votes {
		if countScores(set) == 0 {
			continue
		}
		totalVoters++
		if userFilter != "" && uid != userFilter {
			continue
		}

		type personal struct {
			contestantID int
			name         string
			score        float64
		}
		picks := make([]personal, 0, len(set))
		for contestantID, byCategory := range set {
			name, ok := names[contestantID]
			if !ok || len(byCategory) == 0 {
				continue
			}
			total := 0
			for _, score := range byCategory {
				total += score
			}
			picks = append(picks, personal{
				contestantID: contestantID,
				name:         name,
				score:        float64(total) / float64(len(byCategory)),
			})
		}

		sort.Slice(picks, func(i, j int) bool {
			if picks[i].score != picks[j].score {
				return picks[i].score > picks[j].score
			}
			return picks[i].contestantID < picks[j].contestantID
		})
		if len(picks) > userTopLimit {
			picks = picks[:userTopLimit]
		}

		top := make([]TopPick, len(picks))
		for i, p := range picks {
			top[i] = TopPick{Name: p.name, Score: p.score}
		}
		userTop[uid] = UserTopThree{
			UserName: record.Users[uid].Name,
			TopThree: top,
		}
	}

	return &AggregateResult{
		TopContestants:  scores,
		UserTopThree:    userTop,
		TotalVoters:     totalVoters,
		ResultsRevealed: record.ResultsRevealed,
	}
}

// countScores counts the individual scores in a vote set
func countScores(set models.VoteSet) int {
	n := 0
	for _, byCategory := range set {
		n += len(byCategory)
	}
	return n
}
