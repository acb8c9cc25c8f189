package session_test

import (
	"context"
	"testing"

	"github.com/oskarw/mellovote/internal/errors"
	"github.com/oskarw/mellovote/internal/models"
)

func TestRecordVote_StoresScore(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 2)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")

	if err := m.RecordVote(ctx, join.UserID, 1, models.CategoryClothing, 8); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}

	votes, err := m.VotesForUser(ctx, join.UserID)
	if err != nil {
		t.Fatalf("VotesForUser failed: %v", err)
	}
	if votes[1][models.CategoryClothing] != 8 {
		t.Errorf("expected score 8, got %+v", votes)
	}
}

func TestRecordVote_LastWriteWins(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")

	if err := m.RecordVote(ctx, join.UserID, 1, models.CategorySong, 3); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if err := m.RecordVote(ctx, join.UserID, 1, models.CategorySong, 10); err != nil {
		t.Fatalf("revised vote failed: %v", err)
	}

	votes, _ := m.VotesForUser(ctx, join.UserID)
	if votes[1][models.CategorySong] != 10 {
		t.Errorf("expected last score 10, got %d", votes[1][models.CategorySong])
	}
	if len(votes[1]) != 1 {
		t.Errorf("expected a single entry for the category, got %d", len(votes[1]))
	}
}

func TestRecordVote_ScoreRange(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")

	for _, score := range []int{0, -5, 11, 100} {
		err := m.RecordVote(ctx, join.UserID, 1, models.CategorySong, score)
		if err == nil {
			t.Fatalf("expected error for score %d", score)
		}
		if kindOf(t, err) != errors.ErrValidation {
			t.Errorf("score %d: expected validation error, got %v", score, err)
		}
	}

	// Boundary scores are valid
	for _, score := range []int{1, 10} {
		if err := m.RecordVote(ctx, join.UserID, 1, models.CategorySong, score); err != nil {
			t.Errorf("score %d: expected success, got %v", score, err)
		}
	}
}

func TestRecordVote_UnknownCategory(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")

	err := m.RecordVote(ctx, join.UserID, 1, "choreography", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if kindOf(t, err) != errors.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRecordVote_UnknownUser(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)

	err := m.RecordVote(context.Background(), "nobody", 1, models.CategorySong, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if kindOf(t, err) != errors.ErrUnknownUser {
		t.Errorf("expected unknown user error, got %v", err)
	}
}

func TestRecordVote_UnknownContestant(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 2)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")

	err := m.RecordVote(ctx, join.UserID, 99, models.CategorySong, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if kindOf(t, err) != errors.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestVotesForUser_ReturnsSnapshot(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)
	ctx := context.Background()

	join, _ := m.Join(ctx, "ABCD1234", "Frida")
	m.RecordVote(ctx, join.UserID, 1, models.CategorySong, 5)

	votes, _ := m.VotesForUser(ctx, join.UserID)
	votes[1][models.CategorySong] = 1 // mutate the copy

	again, _ := m.VotesForUser(ctx, join.UserID)
	if again[1][models.CategorySong] != 5 {
		t.Error("expected manager state unaffected by mutating the returned snapshot")
	}
}

func TestVotesForUser_UnknownUser(t *testing.T) {
	m, _ := setupManager(t)
	initSession(t, m, 1)

	_, err := m.VotesForUser(context.Background(), "nobody")
	if err == nil {
		t.Fatal("expected error")
	}
	if kindOf(t, err) != errors.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
