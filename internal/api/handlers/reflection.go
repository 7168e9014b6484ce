package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/llm"
	"github.com/Harshitk-cp/introspect/internal/service"
)

type ReflectionHandler struct {
	svc     *service.ReflectionService
	beliefs domain.BeliefStore
}

func NewReflectionHandler(svc *service.ReflectionService, beliefs domain.BeliefStore) *ReflectionHandler {
	return &ReflectionHandler{svc: svc, beliefs: beliefs}
}

type reflectResponse struct {
	Beliefs []domain.Belief `json:"beliefs"`
	Count   int             `json:"count"`
}

// Run triggers a reflection pass over the episodic log.
func (h *ReflectionHandler) Run(w http.ResponseWriter, r *http.Request) {
	beliefs, err := h.svc.Run(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrModelUnavailable):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "reflection failed")
		}
		return
	}
	if beliefs == nil {
		beliefs = []domain.Belief{}
	}

	writeJSON(w, http.StatusOK, reflectResponse{Beliefs: beliefs, Count: len(beliefs)})
}

// GetBeliefs returns the persisted belief document.
func (h *ReflectionHandler) GetBeliefs(w http.ResponseWriter, r *http.Request) {
	doc, err := h.beliefs.LoadDocument(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load beliefs")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
