package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/introspect/internal/llm"
	"github.com/Harshitk-cp/introspect/internal/service"
)

type TransferHandler struct {
	svc *service.TransferService
}

func NewTransferHandler(svc *service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

type transferRequest struct {
	Situation string `json:"situation"`
}

type transferResponse struct {
	Analysis string `json:"analysis"`
}

// Apply runs the transfer engine against a novel situation.
func (h *TransferHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Situation == "" {
		writeError(w, http.StatusBadRequest, "situation is required")
		return
	}

	analysis, err := h.svc.Apply(r.Context(), req.Situation)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrModelUnavailable):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "transfer failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, transferResponse{Analysis: analysis})
}
