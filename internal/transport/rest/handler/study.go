package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/service"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/transport/rest/middleware"
	"github.com/gorilla/mux"
)

// StudyHandler handles study and question endpoints
type StudyHandler struct {
	studySvc *service.StudyService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(studySvc *service.StudyService) *StudyHandler {
	return &StudyHandler{studySvc: studySvc}
}

// CreateStudyRequest is the request body for creating a study
type CreateStudyRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Year          int    `json:"year"`
	PositiveLabel string `json:"positiveLabel"`
}

// Create handles POST /v1/studies
func (h *StudyHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.PositiveLabel == "" {
		writeError(w, http.StatusBadRequest, "title and positiveLabel are required")
		return
	}

	study := &model.Study{
		HostID:        hostID,
		Title:         req.Title,
		Description:   req.Description,
		Year:          req.Year,
		PositiveLabel: req.PositiveLabel,
	}
	id, err := h.studySvc.Create(r.Context(), study)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedYear) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /v1/studies
func (h *StudyHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	studies, err := h.studySvc.GetByHostID(r.Context(), hostID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"studies": studies})
}

// Get handles GET /v1/studies/{studyId}
func (h *StudyHandler) Get(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, study)
}

// UpdateStudyRequest is the request body for updating a study. Year and
// positiveLabel are not accepted: they are fixed at creation.
type UpdateStudyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Update handles PUT /v1/studies/{studyId}
func (h *StudyHandler) Update(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}

	var req UpdateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.studySvc.Update(r.Context(), study.ID, req.Title, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/studies/{studyId}
func (h *StudyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}
	if err := h.studySvc.Delete(r.Context(), study.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cost handles GET /v1/studies/{studyId}/cost
func (h *StudyHandler) Cost(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}
	total, err := h.studySvc.TotalCost(r.Context(), study.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"totalCost": total})
}

// AddQuestionRequest is the request body for adding a question
type AddQuestionRequest struct {
	Body       string `json:"body"`
	RealAnswer string `json:"realAnswer"`
	ModelName  string `json:"modelName"`
}

// AddQuestion handles POST /v1/studies/{studyId}/questions
func (h *StudyHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}

	var req AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "question body is required")
		return
	}

	question := &model.Question{
		StudyID:    study.ID,
		Body:       req.Body,
		RealAnswer: req.RealAnswer,
		ModelName:  req.ModelName,
	}
	id, err := h.studySvc.AddQuestion(r.Context(), question)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ImportQuestions handles POST /v1/studies/{studyId}/questions/import.
// The CSV is a multipart upload under the "file" field; its first
// column holds the question stems.
func (h *StudyHandler) ImportQuestions(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	count, err := h.studySvc.ImportQuestionsCSV(r.Context(), study.ID, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": count})
}

// GetQuestion handles GET /v1/studies/{studyId}/questions/{questionId}
func (h *StudyHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}

	question, err := h.studySvc.GetQuestion(r.Context(), mux.Vars(r)["questionId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if question == nil || question.StudyID != study.ID {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// ListQuestions handles GET /v1/studies/{studyId}/questions
func (h *StudyHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	study, ok := h.ownedStudy(w, r)
	if !ok {
		return
	}
	questions, err := h.studySvc.GetQuestions(r.Context(), study.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// ownedStudy loads the study from the URL and checks the caller owns it.
func (h *StudyHandler) ownedStudy(w http.ResponseWriter, r *http.Request) (*model.Study, bool) {
	hostID := middleware.GetHostID(r.Context())
	studyID := mux.Vars(r)["studyId"]

	study, err := h.studySvc.GetByID(r.Context(), studyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if study == nil {
		writeError(w, http.StatusNotFound, "study not found")
		return nil, false
	}
	if study.HostID != hostID {
		writeError(w, http.StatusForbidden, "study belongs to another host")
		return nil, false
	}
	return study, true
}
