package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

type AdminHandler struct {
	credentials ports.CredentialService
	election    ports.ElectionService
	audit       ports.AuditReporter
}

func NewAdminHandler(credentials ports.CredentialService, election ports.ElectionService, audit ports.AuditReporter) *AdminHandler {
	return &AdminHandler{
		credentials: credentials,
		election:    election,
		audit:       audit,
	}
}

type voterBatchRequest struct {
	VoterIDs []string `json:"voter_ids"`
}

func (h *AdminHandler) RegisterVoters(w http.ResponseWriter, r *http.Request) {
	var req voterBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.VoterIDs) == 0 {
		http.Error(w, "voter_ids is required", http.StatusBadRequest)
		return
	}

	result, err := h.credentials.RegisterVoters(r.Context(), req.VoterIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *AdminHandler) IssueCodes(w http.ResponseWriter, r *http.Request) {
	var req voterBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.VoterIDs) == 0 {
		http.Error(w, "voter_ids is required", http.StatusBadRequest)
		return
	}

	result, err := h.credentials.IssueCodes(r.Context(), req.VoterIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *AdminHandler) Undo(w http.ResponseWriter, r *http.Request) {
	undone, err := h.election.Undo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"undone_seq":    undone.Sequence,
		"ballot_digest": undone.BallotDigest,
		"candidate_id":  undone.CandidateID,
	})
}

type auditEventResponse struct {
	Kind    domain.AuditKind  `json:"type"`
	Details domain.AuditEvent `json:"details"`
}

func (h *AdminHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	events, err := h.audit.RecentEvents(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, auditEventResponse{Kind: e.Kind(), Details: e})
	}
	writeJSON(w, http.StatusOK, out)
}
