package services

import (
	"context"
	"fmt"
	"time"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
	"github.com/google/uuid"
)

// BallotService enforces the single-vote-per-voter rule against a fixed
// deadline. The early HasVoted check answers the common case; the repository
// CastVote is the atomic check-and-set that holds under concurrent requests.
type BallotService struct {
	userRepo ports.UserRepository
	voteRepo ports.VoteRepository
	window   domain.VotingWindow
	now      func() time.Time
}

func NewBallotService(userRepo ports.UserRepository, voteRepo ports.VoteRepository, window domain.VotingWindow) *BallotService {
	return &BallotService{
		userRepo: userRepo,
		voteRepo: voteRepo,
		window:   window,
		now:      time.Now,
	}
}

var _ ports.BallotService = (*BallotService)(nil)

func (s *BallotService) CastVote(ctx context.Context, voterID, candidateID string) error {
	user, err := s.userRepo.GetByEmail(ctx, voterID)
	if err != nil {
		return fmt.Errorf("failed to get voter: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if !s.window.Open(s.now()) {
		return domain.ErrDeadlinePassed
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, voterID)
	if err != nil {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}
	if hasVoted {
		return domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		VoterID:     voterID,
		CandidateID: candidateID,
		CreatedAt:   s.now(),
	}
	return s.voteRepo.CastVote(ctx, vote)
}

func (s *BallotService) Tally(ctx context.Context) (map[string]int64, error) {
	tally, err := s.voteRepo.Tally(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	return tally, nil
}

func (s *BallotService) TimeRemaining() int64 {
	return s.window.Remaining(s.now())
}
