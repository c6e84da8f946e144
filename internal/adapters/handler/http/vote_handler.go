package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.BallotService
}

func NewVoteHandler(service ports.BallotService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	UID         string `json:"uid"`
	CandidateID string `json:"candidate_id"`
}

type tallyResponse struct {
	Tally map[string]int64 `json:"tally"`
}

type timeLeftResponse struct {
	Seconds int64 `json:"seconds"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.CastVote(r.Context(), req.UID, req.CandidateID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "user not found")
			return
		}
		if errors.Is(err, domain.ErrDeadlinePassed) {
			writeDetail(w, http.StatusForbidden, "voting has ended")
			return
		}
		if errors.Is(err, domain.ErrAlreadyVoted) {
			writeDetail(w, http.StatusForbidden, "you have already voted")
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeDetail(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}

		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "vote submitted successfully")
}

func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.Tally(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeDetail(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}

		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, tallyResponse{Tally: tally})
}

func (h *VoteHandler) TimeLeft(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, timeLeftResponse{Seconds: h.service.TimeRemaining()})
}
