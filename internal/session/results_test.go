package session_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/models"
	"github.com/oskarw/mellovote/internal/session"
	"github.com/oskarw/mellovote/internal/store/mock"
)

// approxEqual compares floats with a small tolerance
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeResults_EmptySession(t *testing.T) {
	m, _ := setupManager(t)

	results := m.ComputeResults(context.Background(), "")

	if len(results.TopContestants) != 0 {
		t.Errorf("expected no contestants, got %d", len(results.TopContestants))
	}
	if results.TotalVoters != 0 {
		t.Errorf("expected 0 voters, got %d", results.TotalVoters)
	}
	if results.ResultsRevealed {
		t.Error("expected reveal flag false")
	}
}

func TestComputeResults_CategoryAveragesAndOverall(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	// Two users: clothing scores 8 and 6, one song score 10, no
	// performance votes at all
	u1, _ := m.Join(ctx, "ABCD1234", "Frida")
	u2, _ := m.Join(ctx, "ABCD1234", "Olle")
	m.RecordVote(ctx, u1.UserID, 1, models.CategoryClothing, 8)
	m.RecordVote(ctx, u2.UserID, 1, models.CategoryClothing, 6)
	m.RecordVote(ctx, u1.UserID, 1, models.CategorySong, 10)

	results := m.ComputeResults(ctx, "")
	if len(results.TopContestants) != 1 {
		t.Fatalf("expected 1 contestant, got %d", len(results.TopContestants))
	}

	c := results.TopContestants[0]
	if !approxEqual(c.CategoryAverages[models.CategoryClothing], 7) {
		t.Errorf("clothing average: expected 7, got %f", c.CategoryAverages[models.CategoryClothing])
	}
	if !approxEqual(c.CategoryAverages[models.CategoryPerformance], 0) {
		t.Errorf("performance average: expected 0, got %f", c.CategoryAverages[models.CategoryPerformance])
	}
	if !approxEqual(c.CategoryAverages[models.CategorySong], 10) {
		t.Errorf("song average: expected 10, got %f", c.CategoryAverages[models.CategorySong])
	}
	// An un-judged category still counts as a 0 contribution
	if !approxEqual(c.OverallScore, 17.0/3.0) {
		t.Errorf("overall: expected %f, got %f", 17.0/3.0, c.OverallScore)
	}
}

func TestComputeResults_PerUserAverageSkipsUnscoredCategories(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	// The user scored only 2 of 3 categories: the personal average
	// divides by 2, unlike the global formula's fixed 3
	join, _ := m.Join(ctx, "ABCD1234", "Frida")
	m.RecordVote(ctx, join.UserID, 1, models.CategoryClothing, 9)
	m.RecordVote(ctx, join.UserID, 1, models.CategorySong, 7)

	results := m.ComputeResults(ctx, "")

	top, ok := results.UserTopThree[join.UserID]
	if !ok {
		t.Fatal("expected an entry for the voting user")
	}
	if top.UserName != "Frida" {
		t.Errorf("expected user name Frida, got %q", top.UserName)
	}
	if len(top.TopThree) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(top.TopThree))
	}
	if !approxEqual(top.TopThree[0].Score, 8) {
		t.Errorf("personal score: expected 8, got %f", top.TopThree[0].Score)
	}
}

func TestComputeResults_GlobalTieBreakByID(t *testing.T) {
	st := mock.New()
	record := models.NewSessionRecord()
	record.SessionID = "TIE11111"
	record.Contestants = []models.Contestant{
		{ID: 3, Name: "Three"},
		{ID: 7, Name: "Seven"},
	}
	record.Users["u1"] = models.User{ID: "u1", Name: "Frida"}
	record.Votes["u1"] = models.VoteSet{
		3: {models.CategoryClothing: 5, models.CategoryPerformance: 5, models.CategorySong: 5},
		7: {models.CategoryClothing: 5, models.CategoryPerformance: 5, models.CategorySong: 5},
	}
	st.Seed(record)
	m := session.NewManager(logger.New(), st)

	results := m.ComputeResults(context.Background(), "")
	if len(results.TopContestants) != 2 {
		t.Fatalf("expected 2 contestants, got %d", len(results.TopContestants))
	}
	if !approxEqual(results.TopContestants[0].OverallScore, results.TopContestants[1].OverallScore) {
		t.Fatal("expected a tie")
	}
	if results.TopContestants[0].ID != 3 {
		t.Errorf("expected lower id first on tie, got %d", results.TopContestants[0].ID)
	}
}

func TestComputeResults_TopTenLimit(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 12)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")
	for id := 1; id <= 12; id++ {
		m.RecordVote(ctx, join.UserID, id, models.CategorySong, (id%10)+1)
	}

	results := m.ComputeResults(ctx, "")
	if len(results.TopContestants) != 10 {
		t.Errorf("expected ranking capped at 10, got %d", len(results.TopContestants))
	}
}

func TestComputeResults_PersonalTopCappedAtThree(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 5)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")
	for id := 1; id <= 5; id++ {
		m.RecordVote(ctx, join.UserID, id, models.CategorySong, id+3)
	}

	results := m.ComputeResults(ctx, "")
	top := results.UserTopThree[join.UserID]
	if len(top.TopThree) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(top.TopThree))
	}
	// Highest scores first: contestants 5, 4, 3 scored 8, 7, 6
	wantScores := []float64{8, 7, 6}
	for i, want := range wantScores {
		if !approxEqual(top.TopThree[i].Score, want) {
			t.Errorf("pick %d: expected score %f, got %f", i, want, top.TopThree[i].Score)
		}
	}
}

func TestComputeResults_TotalVotersCountsOnlyActualVoters(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	voter, _ := m.Join(ctx, "ABCD1234", "Frida")
	m.Join(ctx, "ABCD1234", "Lurker")
	m.RecordVote(ctx, voter.UserID, 1, models.CategorySong, 6)

	results := m.ComputeResults(ctx, "")
	if results.TotalVoters != 1 {
		t.Errorf("expected 1 voter (joined-but-silent users excluded), got %d", results.TotalVoters)
	}
	if _, ok := results.UserTopThree[voter.UserID]; !ok {
		t.Error("expected voting user in personal rankings")
	}
}

func TestComputeResults_UserFilterNarrowsPersonalRankings(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	u1, _ := m.Join(ctx, "ABCD1234", "Frida")
	u2, _ := m.Join(ctx, "ABCD1234", "Olle")
	m.RecordVote(ctx, u1.UserID, 1, models.CategorySong, 6)
	m.RecordVote(ctx, u2.UserID, 1, models.CategorySong, 7)

	results := m.ComputeResults(ctx, u1.UserID)
	if len(results.UserTopThree) != 1 {
		t.Fatalf("expected 1 personal ranking, got %d", len(results.UserTopThree))
	}
	if _, ok := results.UserTopThree[u1.UserID]; !ok {
		t.Error("expected only the requested user's ranking")
	}
	// The filter must not hide the true voter count
	if results.TotalVoters != 2 {
		t.Errorf("expected 2 voters regardless of filter, got %d", results.TotalVoters)
	}
}

func TestComputeResults_OrphanVotesExcluded(t *testing.T) {
	st := mock.New()
	record := models.NewSessionRecord()
	record.SessionID = "ORPH1111"
	record.Contestants = []models.Contestant{{ID: 1, Name: "Alpha"}}
	record.Users["u1"] = models.User{ID: "u1", Name: "Frida"}
	// Contestant 99 is no longer on the roster; its votes stay in the
	// matrix but must not affect any ranking
	record.Votes["u1"] = models.VoteSet{
		1:  {models.CategorySong: 4},
		99: {models.CategorySong: 10},
	}
	st.Seed(record)
	m := session.NewManager(logger.New(), st)

	results := m.ComputeResults(context.Background(), "")
	if len(results.TopContestants) != 1 {
		t.Fatalf("expected 1 ranked contestant, got %d", len(results.TopContestants))
	}
	if results.TopContestants[0].ID != 1 {
		t.Errorf("expected contestant 1, got %d", results.TopContestants[0].ID)
	}

	top := results.UserTopThree["u1"]
	for _, pick := range top.TopThree {
		if pick.Name == "" {
			t.Error("expected orphan votes excluded from personal rankings")
		}
	}
	if len(top.TopThree) != 1 {
		t.Errorf("expected 1 personal pick, got %d", len(top.TopThree))
	}
}

func TestRevealResults_OneWayAndIdempotent(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	if m.IsRevealed(ctx) {
		t.Fatal("expected reveal flag to start false")
	}

	if err := m.RevealResults(ctx); err != nil {
		t.Fatalf("RevealResults failed: %v", err)
	}
	if !m.IsRevealed(ctx) {
		t.Fatal("expected reveal flag true")
	}

	// Re-invoking is a no-op success
	if err := m.RevealResults(ctx); err != nil {
		t.Errorf("expected repeated reveal to succeed, got %v", err)
	}
	if !m.IsRevealed(ctx) {
		t.Error("expected reveal flag to stay true")
	}

	results := m.ComputeResults(ctx, "")
	if !results.ResultsRevealed {
		t.Error("expected reveal flag in results")
	}

	// Only a restart (or retire) closes the gate again
	if err := m.RestartSession(ctx); err != nil {
		t.Fatalf("RestartSession failed: %v", err)
	}
	if m.IsRevealed(ctx) {
		t.Error("expected reveal flag cleared by restart")
	}
}

func TestComputeResults_Deterministic(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 6)
	ctx := context.Background()

	u1, _ := m.Join(ctx, "ABCD1234", "Frida")
	u2, _ := m.Join(ctx, "ABCD1234", "Olle")
	for id := 1; id <= 6; id++ {
		m.RecordVote(ctx, u1.UserID, id, models.CategoryClothing, (id*3)%10+1)
		m.RecordVote(ctx, u2.UserID, id, models.CategorySong, (id*7)%10+1)
	}

	first := m.ComputeResults(ctx, "")
	for i := 0; i < 5; i++ {
		again := m.ComputeResults(ctx, "")
		if fmt.Sprintf("%+v", again.TopContestants) != fmt.Sprintf("%+v", first.TopContestants) {
			t.Fatal("expected identical ranking on repeated computation")
		}
	}
}
