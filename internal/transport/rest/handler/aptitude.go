package handler

import (
	"aptiprep/internal/apperr"
	"aptiprep/internal/model"
	"aptiprep/internal/service"
	"aptiprep/internal/transport/rest/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AptitudeHandler handles aptitude practice and progress endpoints
type AptitudeHandler struct {
	aptitudeSvc *service.AptitudeService
	log         *zap.Logger
}

// NewAptitudeHandler creates a new aptitude handler
func NewAptitudeHandler(aptitudeSvc *service.AptitudeService, log *zap.Logger) *AptitudeHandler {
	return &AptitudeHandler{aptitudeSvc: aptitudeSvc, log: log}
}

func (h *AptitudeHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, r, h.log, apperr.Unauthorized("unauthorized"))
		return "", false
	}
	return userID, true
}

// GetQuestions handles GET /v1/aptitude/questions?category=&topic=
func (h *AptitudeHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	resp, err := h.aptitudeSvc.GetTopicQuestions(r.Context(), userID, q.Get("category"), q.Get("topic"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, "questions fetched", resp)
}

// SubmitResults handles POST /v1/aptitude/results
func (h *AptitudeHandler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.SubmitResultsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.aptitudeSvc.SubmitResults(r.Context(), userID, &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp.Message, resp)
}

// GetSummary handles GET /v1/aptitude/summary
func (h *AptitudeHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	resp, err := h.aptitudeSvc.GetSummary(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, "progress summary fetched", resp)
}

// GetCategoryTopics handles GET /v1/aptitude/categories/{category}/topics
func (h *AptitudeHandler) GetCategoryTopics(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	resp, err := h.aptitudeSvc.GetCategoryTopics(r.Context(), userID, mux.Vars(r)["category"])
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, "topics fetched", resp)
}
