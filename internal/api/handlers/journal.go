package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/service"
)

type JournalHandler struct {
	svc *service.JournalService
}

func NewJournalHandler(svc *service.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

type createInteractionRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags,omitempty"`
}

// Create appends one exchange to the episodic log. The question may be empty
// (imported posts are monologues) but the answer is required.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Answer == "" {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	interaction, err := h.svc.Append(r.Context(), req.Question, req.Answer, req.Tags)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log interaction")
		return
	}

	writeJSON(w, http.StatusCreated, interaction)
}

type listInteractionsResponse struct {
	Interactions []domain.Interaction `json:"interactions"`
	Count        int                  `json:"count"`
}

// List returns logged interactions, oldest first. An optional limit query
// parameter restricts the result to the most recent N entries.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	interactions, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load interactions")
		return
	}
	if interactions == nil {
		interactions = []domain.Interaction{}
	}

	writeJSON(w, http.StatusOK, listInteractionsResponse{
		Interactions: interactions,
		Count:        len(interactions),
	})
}

// Count returns the total number of logged interactions.
func (h *JournalHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count interactions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
