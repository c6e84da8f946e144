package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID          uuid.UUID `json:"id"`
	VoterID     string    `json:"voter_id"`
	CandidateID string    `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}
