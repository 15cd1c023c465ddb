package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelar/pitch/internal/ai"
)

// Every response uses the {status: success|error, ...} envelope. Error bodies
// carry a message; success bodies merge the handler's payload fields.

func writeJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response", "err", err)
	}
}

func writeSuccess(w http.ResponseWriter, payload map[string]any, code int) {
	body := map[string]any{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, body, code)
}

func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, map[string]any{"status": "error", "message": message}, code)
}

// writeEngineError maps generation pipeline failures to HTTP statuses:
// missing profile is not-found, a provider failure is a bad request,
// anything else is internal.
func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, ai.ErrProfileNotFound) {
		writeError(w, "Freelancer profile not found. Please create a profile first.", http.StatusNotFound)
		return
	}

	var perr *ai.ProviderError
	if errors.As(err, &perr) {
		writeError(w, "Error in "+perr.Stage+": "+perr.Err.Error(), http.StatusBadRequest)
		return
	}

	writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
}
