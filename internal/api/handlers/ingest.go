package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/Harshitk-cp/introspect/internal/ingest"
)

type IngestHandler struct {
	svc *ingest.Service
}

func NewIngestHandler(svc *ingest.Service) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type ingestRequest struct {
	// Source is the raw export content. Path reads a file from the server's
	// filesystem instead; exactly one of the two must be set.
	Source     string `json:"source,omitempty"`
	Path       string `json:"path,omitempty"`
	Platform   string `json:"platform,omitempty"`
	UserHandle string `json:"user_handle,omitempty"`
}

// Ingest imports a social media export into the episodic log. Platform is
// required for inline source and auto-detected from the filename for paths.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if (req.Source == "") == (req.Path == "") {
		writeError(w, http.StatusBadRequest, "exactly one of source or path is required")
		return
	}

	var result *ingest.Result
	var err error
	if req.Path != "" {
		result, err = h.svc.IngestFile(r.Context(), req.Path, req.Platform, req.UserHandle)
	} else {
		if req.Platform == "" {
			writeError(w, http.StatusBadRequest, "platform is required with inline source")
			return
		}
		result, err = h.svc.Ingest(r.Context(), req.Source, req.Platform, req.UserHandle)
	}

	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnknownPlatform):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, os.ErrNotExist):
			writeError(w, http.StatusNotFound, "export file not found")
		default:
			writeError(w, http.StatusInternalServerError, "ingest failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
