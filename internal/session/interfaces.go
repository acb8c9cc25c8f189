package session

import (
	"context"

	"github.com/oskarw/mellovote/internal/models"
)

// Servicer defines the operation set the request layer consumes
type Servicer interface {
	InitializeSession(ctx context.Context, contestantCount int, names []string) (*InitResult, error)
	RestartSession(ctx context.Context) error
	RetireSession(ctx context.Context) error
	GetStatus(ctx context.Context) *Status
	AddContestants(ctx context.Context, names []string) ([]models.Contestant, error)
	RenameContestant(ctx context.Context, contestantID int, name string) (models.Contestant, error)
	Join(ctx context.Context, sessionID, userName string) (*JoinResult, error)
	Reconnect(ctx context.Context, userID, sessionID string) (*ReconnectResult, error)
	ViewForUser(ctx context.Context, userID string) (*UserView, error)
	RecordVote(ctx context.Context, userID string, contestantID int, categoryID string, score int) error
	VotesForUser(ctx context.Context, userID string) (models.VoteSet, error)
	RevealResults(ctx context.Context) error
	IsRevealed(ctx context.Context) bool
	ComputeResults(ctx context.Context, userID string) *AggregateResult
	SetJoinQR(ctx context.Context, dataURL string) error
	JoinQR(ctx context.Context) string
}

// Ensure the concrete type implements the interface
var _ Servicer = (*Manager)(nil)
