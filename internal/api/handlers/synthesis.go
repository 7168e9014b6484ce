package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/llm"
	"github.com/Harshitk-cp/introspect/internal/service"
)

type SynthesisHandler struct {
	svc      *service.SynthesisService
	patterns domain.PatternStore
	tensions domain.TensionStore
}

func NewSynthesisHandler(svc *service.SynthesisService, patterns domain.PatternStore, tensions domain.TensionStore) *SynthesisHandler {
	return &SynthesisHandler{svc: svc, patterns: patterns, tensions: tensions}
}

// Run triggers a synthesis pass over the persisted beliefs. A run that had
// nothing to work with, or whose model output could not be parsed, reports
// skipped instead of failing.
func (h *SynthesisHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Run(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrModelUnavailable):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "synthesis failed")
		}
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "skipped"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetPatterns returns the persisted cognitive pattern document.
func (h *SynthesisHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	doc, err := h.patterns.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load patterns")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type tensionsResponse struct {
	Tensions []domain.Tension `json:"tensions"`
	Count    int              `json:"count"`
}

// GetTensions returns the persisted tensions.
func (h *SynthesisHandler) GetTensions(w http.ResponseWriter, r *http.Request) {
	tensions, err := h.tensions.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load tensions")
		return
	}
	if tensions == nil {
		tensions = []domain.Tension{}
	}
	writeJSON(w, http.StatusOK, tensionsResponse{Tensions: tensions, Count: len(tensions)})
}
