package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

type ElectionHandler struct {
	election ports.ElectionService
	results  ports.ResultsService
}

func NewElectionHandler(election ports.ElectionService, results ports.ResultsService) *ElectionHandler {
	return &ElectionHandler{
		election: election,
		results:  results,
	}
}

type castRequest struct {
	Code        string `json:"otac"`
	CandidateID string `json:"candidate_id"`
}

func (h *ElectionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req castRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" || req.CandidateID == "" {
		http.Error(w, "otac and candidate_id are required", http.StatusBadRequest)
		return
	}

	receipt, err := h.election.Cast(r.Context(), ports.CastInput{
		Code:        req.Code,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

func (h *ElectionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.Results(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ElectionHandler) VerifyBallot(w http.ResponseWriter, r *http.Request) {
	digest := chi.URLParam(r, "digest")
	if digest == "" {
		http.Error(w, "missing ballot digest", http.StatusBadRequest)
		return
	}

	ballot, err := h.results.VerifyBallot(r.Context(), digest)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"found":  true,
		"ballot": ballot,
	})
}

func (h *ElectionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.results.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOrUsedCode),
		errors.Is(err, domain.ErrUnknownCandidate),
		errors.Is(err, domain.ErrVoterNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrSequenceConflict),
		errors.Is(err, domain.ErrUnsupportedUndoTarget):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUndoDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmpty),
		errors.Is(err, domain.ErrBallotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
