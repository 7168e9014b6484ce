package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/introspect/internal/service"
)

type ContextHandler struct {
	svc *service.ContextService
}

func NewContextHandler(svc *service.ContextService) *ContextHandler {
	return &ContextHandler{svc: svc}
}

type contextResponse struct {
	BeliefBlock    string `json:"belief_block"`
	CognitiveBlock string `json:"cognitive_block"`
}

// Get returns both prompt-injection blocks rendered from current state.
// Callers prepend these to their model prompts.
func (h *ContextHandler) Get(w http.ResponseWriter, r *http.Request) {
	beliefBlock, err := h.svc.BeliefBlock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render belief block")
		return
	}

	cognitiveBlock, err := h.svc.CognitiveBlock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render cognitive block")
		return
	}

	writeJSON(w, http.StatusOK, contextResponse{
		BeliefBlock:    beliefBlock,
		CognitiveBlock: cognitiveBlock,
	})
}
