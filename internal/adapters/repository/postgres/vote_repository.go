package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{db: db}
}

// CastVote runs the marker insert and the vote append in one transaction.
// The conditional insert into voted is the check-and-set: when the marker row
// already exists no rows are affected and the transaction rolls back, so two
// concurrent casts for the same voter yield exactly one vote record.
func (r *voteRepository) CastVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO voted (voter_id) VALUES ($1) ON CONFLICT (voter_id) DO NOTHING`,
		vote.VoterID)
	if err != nil {
		return fmt.Errorf("%w: failed to set voted marker: %v", domain.ErrStoreUnavailable, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read marker result: %v", domain.ErrStoreUnavailable, err)
	}
	if inserted == 0 {
		return domain.ErrAlreadyVoted
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO votes (id, voter_id, candidate_id, created_at) VALUES ($1, $2, $3, $4)`,
		vote.ID, vote.VoterID, vote.CandidateID, vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to save vote: %v", domain.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit vote: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, voterID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM voted WHERE voter_id = $1`, voterID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to check voted marker: %v", domain.ErrStoreUnavailable, err)
	}
	return true, nil
}

func (r *voteRepository) Tally(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT candidate_id, COUNT(*) FROM votes GROUP BY candidate_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch tally: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	tally := make(map[string]int64)
	for rows.Next() {
		var candidateID string
		var count int64
		if err := rows.Scan(&candidateID, &count); err != nil {
			return nil, fmt.Errorf("%w: failed to scan tally row: %v", domain.ErrStoreUnavailable, err)
		}
		tally[candidateID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating tally: %v", domain.ErrStoreUnavailable, err)
	}
	return tally, nil
}
