package memory

import (
	"context"

	"github.com/digivote/api/internal/core/domain"
)

// CastVote serializes the marker check and both writes under the store mutex,
// so concurrent casts for the same voter resolve to exactly one vote record.
func (s *Store) CastVote(_ context.Context, vote *domain.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.voted[vote.VoterID]; ok {
		return domain.ErrAlreadyVoted
	}

	s.voted[vote.VoterID] = struct{}{}
	s.votes = append(s.votes, *vote)
	return nil
}

func (s *Store) HasVoted(_ context.Context, voterID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.voted[voterID]
	return ok, nil
}

func (s *Store) Tally(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tally := make(map[string]int64)
	for _, v := range s.votes {
		tally[v.CandidateID]++
	}
	return tally, nil
}
