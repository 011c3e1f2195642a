package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/collapse"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/service"
	"github.com/gorilla/mux"
)

// Detached runs get their own deadline; the request context dies with
// the HTTP response.
const runTimeout = 2 * time.Hour

// SimulationHandler handles sampling run endpoints
type SimulationHandler struct {
	samplerSvc *service.SamplerService
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(samplerSvc *service.SamplerService) *SimulationHandler {
	return &SimulationHandler{samplerSvc: samplerSvc}
}

// TokenSetRequest is one candidate with its lexical variants
type TokenSetRequest struct {
	Label  string   `json:"label"`
	Tokens []string `json:"tokens"`
}

// RunRequest is the request body for starting a run
type RunRequest struct {
	Model       string            `json:"model"`
	Temperature float64           `json:"temperature"`
	CostOnly    bool              `json:"costOnly"`
	TokenSets   []TokenSetRequest `json:"tokenSets"`
}

// Run handles POST /v1/studies/{studyId}/questions/{questionId}/run.
// Cost-only quotes return synchronously; real runs detach and report
// progress over the study's WebSocket.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var tokenSets collapse.TokenSets
	for _, ts := range req.TokenSets {
		if ts.Label == "" || len(ts.Tokens) == 0 {
			writeError(w, http.StatusBadRequest, "token sets need a label and at least one token")
			return
		}
		tokenSets = append(tokenSets, collapse.CategorySet{
			Label:  ts.Label,
			Tokens: ts.Tokens,
		})
	}

	params := service.RunParams{
		StudyID:     vars["studyId"],
		QuestionID:  vars["questionId"],
		TokenSets:   tokenSets,
		Model:       req.Model,
		Temperature: req.Temperature,
		CostOnly:    req.CostOnly,
	}

	if req.CostOnly {
		result, err := h.samplerSvc.Run(r.Context(), params)
		if err != nil {
			writeRunError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	// Validate cheaply before detaching: a cost-only pass resolves the
	// study, question, respondents and price table.
	quote := params
	quote.CostOnly = true
	if _, err := h.samplerSvc.Run(r.Context(), quote); err != nil {
		writeRunError(w, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := h.samplerSvc.Run(ctx, params); err != nil {
			log.Printf("sampling run failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func writeRunError(w http.ResponseWriter, err error) {
	switch err {
	case service.ErrStudyNotFound, service.ErrQuestionNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case service.ErrNoRespondents:
		writeError(w, http.StatusBadRequest, err.Error())
	case service.ErrRunInProgress:
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
