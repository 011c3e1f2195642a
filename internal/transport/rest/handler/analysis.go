package handler

import (
	"errors"
	"net/http"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/service"
	"github.com/gorilla/mux"
)

// AnalysisHandler handles metrics endpoints
type AnalysisHandler struct {
	metricsSvc *service.MetricsService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(metricsSvc *service.MetricsService) *AnalysisHandler {
	return &AnalysisHandler{metricsSvc: metricsSvc}
}

// Compute handles POST /v1/studies/{studyId}/questions/{questionId}/analysis
func (h *AnalysisHandler) Compute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	data, err := h.metricsSvc.Compute(r.Context(), vars["studyId"], vars["questionId"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudyNotFound), errors.Is(err, service.ErrQuestionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoUsableData):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Responses handles GET /v1/studies/{studyId}/questions/{questionId}/responses
func (h *AnalysisHandler) Responses(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	responses, err := h.metricsSvc.GetResponses(r.Context(), vars["studyId"], vars["questionId"])
	if err != nil {
		if errors.Is(err, service.ErrStudyNotFound) || errors.Is(err, service.ErrQuestionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// Get handles GET /v1/questions/{questionId}/analysis
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	data, err := h.metricsSvc.GetAnalysis(r.Context(), questionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, "no analysis for this question")
		return
	}
	writeJSON(w, http.StatusOK, data)
}
