package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fritter/internal/utils"
)

// WriteJSON encodes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError renders err as {"error": msg} or, for keyed application errors,
// {"error": {key: msg}}. Errors that are not AppErrors become a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := utils.AsAppError(err)
	if !ok {
		slog.Error("unhandled error", "error", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "Internal server error"})
		return
	}

	status := utils.AppErrorToHTTPStatus(appErr.Code)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "code", appErr.Code, "error", appErr)
		WriteJSON(w, status, map[string]interface{}{"error": "Internal server error"})
		return
	}

	if appErr.Key != "" {
		WriteJSON(w, status, map[string]interface{}{
			"error": map[string]string{appErr.Key: appErr.Message},
		})
		return
	}
	WriteJSON(w, status, map[string]interface{}{"error": appErr.Message})
}
