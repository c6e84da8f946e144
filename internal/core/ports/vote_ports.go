package ports

import (
	"context"

	"github.com/digivote/api/internal/core/domain"
)

type VoteRepository interface {
	// CastVote atomically creates the voted marker for vote.VoterID and
	// appends the vote record. It returns domain.ErrAlreadyVoted when the
	// marker already exists; the two writes never partially apply.
	CastVote(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, voterID string) (bool, error)
	Tally(ctx context.Context) (map[string]int64, error)
}

type BallotService interface {
	CastVote(ctx context.Context, voterID, candidateID string) error
	Tally(ctx context.Context) (map[string]int64, error)
	TimeRemaining() int64
}
