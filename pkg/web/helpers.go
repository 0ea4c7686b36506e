package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Generic messages returned to clients. Failure details are logged, never sent.
const (
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgInternalServerError = "Internal Server Error"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondInternalError writes the generic 500 body.
func RespondInternalError(w http.ResponseWriter, logger *slog.Logger) {
	RespondError(w, logger, http.StatusInternalServerError, MsgInternalServerError)
}

// RespondMethodNotAllowed writes the generic 405 body.
func RespondMethodNotAllowed(w http.ResponseWriter, logger *slog.Logger) {
	RespondError(w, logger, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
