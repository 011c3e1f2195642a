package handler

import (
	"encoding/json"
	"net/http"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/service"
	"github.com/gorilla/mux"
)

// Uploaded datasets are capped at 32 MB in memory.
const maxUploadBytes = 32 << 20

// RespondentHandler handles respondent endpoints
type RespondentHandler struct {
	respondentSvc *service.RespondentService
}

// NewRespondentHandler creates a new respondent handler
func NewRespondentHandler(respondentSvc *service.RespondentService) *RespondentHandler {
	return &RespondentHandler{respondentSvc: respondentSvc}
}

// Create handles POST /v1/studies/{studyId}/respondents
func (h *RespondentHandler) Create(w http.ResponseWriter, r *http.Request) {
	studyID := mux.Vars(r)["studyId"]

	var respondent model.Respondent
	if err := json.NewDecoder(r.Body).Decode(&respondent); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondent.StudyID = studyID

	id, err := h.respondentSvc.Create(r.Context(), &respondent)
	if err != nil {
		if err == service.ErrStudyNotFound {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Import handles POST /v1/studies/{studyId}/respondents/import
// The dataset is a multipart upload under the "file" field.
func (h *RespondentHandler) Import(w http.ResponseWriter, r *http.Request) {
	studyID := mux.Vars(r)["studyId"]

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	datasetName := r.FormValue("datasetName")
	if datasetName == "" {
		datasetName = header.Filename
	}

	count, err := h.respondentSvc.ImportCSV(r.Context(), studyID, datasetName, file)
	if err != nil {
		if err == service.ErrStudyNotFound {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": count})
}

// List handles GET /v1/studies/{studyId}/respondents
func (h *RespondentHandler) List(w http.ResponseWriter, r *http.Request) {
	studyID := mux.Vars(r)["studyId"]
	respondents, err := h.respondentSvc.GetByStudyID(r.Context(), studyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"respondents": respondents})
}
