package handler

import (
	"aptiprep/internal/apperr"
	"aptiprep/internal/transport/rest/middleware"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type successEnvelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

type errorEnvelope struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, successEnvelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// writeError renders err as the error envelope. Internal causes are logged, never sent.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	e := apperr.From(err)
	if e.Status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("requestId", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	details := e.Errors
	if details == nil {
		details = []string{}
	}
	writeJSON(w, e.Status, errorEnvelope{
		Success:    false,
		StatusCode: e.Status,
		Message:    e.Message,
		Errors:     details,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("invalid request body", err.Error())
	}
	return nil
}
