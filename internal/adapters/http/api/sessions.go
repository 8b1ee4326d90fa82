// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/repository"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// SessionsHandler handles session submission and retrieval.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// sessionRequest is the POST /sessions body. Sample fields are
// pointer-typed: a null or omitted field means explicitly missing, which
// the normalizer distinguishes from zero.
type sessionRequest struct {
	SessionID string            `json:"session_id"`
	Samples   []model.RawSample `json:"samples"`
}

func (r sessionRequest) validate() error {
	if len(r.Samples) == 0 {
		return errors.New("missing samples")
	}
	return nil
}

// HandlePostSession handles POST /sessions requests.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	// Idempotency: a resubmitted session id is acknowledged, not re-run.
	if h.deps.SeenAndRecord(r.Context(), req.SessionID) {
		writeJSON(w, http.StatusOK, ackResponse{SessionID: req.SessionID, Status: "duplicate", Duplicate: true})
		return
	}

	if ok := h.deps.Submit(r.Context(), req.SessionID, req.Samples); !ok {
		// Roll back the seen marker so a retry can succeed.
		h.deps.Unrecord(r.Context(), req.SessionID)
		writeError(w, http.StatusTooManyRequests, "backpressure", fmt.Errorf("%s: %w", op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{SessionID: req.SessionID, Status: "accepted"})
}

// HandleGetSession handles GET /sessions/{id} requests.
func (h *SessionsHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	res, err := h.deps.Result(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
