package service

import (
	"context"
	"io"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/ingest"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/repository"
)

// RespondentService handles respondent creation and dataset import
type RespondentService struct {
	studyRepo      repository.StudyRepo
	respondentRepo repository.RespondentRepo
}

// NewRespondentService creates a new respondent service
func NewRespondentService(studyRepo repository.StudyRepo, respondentRepo repository.RespondentRepo) *RespondentService {
	return &RespondentService{
		studyRepo:      studyRepo,
		respondentRepo: respondentRepo,
	}
}

// Create adds a single respondent to a study
func (s *RespondentService) Create(ctx context.Context, respondent *model.Respondent) (string, error) {
	study, err := s.studyRepo.GetByID(ctx, respondent.StudyID)
	if err != nil {
		return "", err
	}
	if study == nil {
		return "", ErrStudyNotFound
	}
	if err := s.respondentRepo.Create(ctx, respondent); err != nil {
		return "", err
	}
	return respondent.ID, nil
}

// ImportCSV parses a respondent dataset and stores every row
func (s *RespondentService) ImportCSV(ctx context.Context, studyID, datasetName string, r io.Reader) (int, error) {
	study, err := s.studyRepo.GetByID(ctx, studyID)
	if err != nil {
		return 0, err
	}
	if study == nil {
		return 0, ErrStudyNotFound
	}

	respondents, err := ingest.ParseRespondents(r, studyID, datasetName)
	if err != nil {
		return 0, err
	}
	if err := s.respondentRepo.CreateMany(ctx, respondents); err != nil {
		return 0, err
	}
	return len(respondents), nil
}

// GetByStudyID lists a study's respondents
func (s *RespondentService) GetByStudyID(ctx context.Context, studyID string) ([]*model.Respondent, error) {
	return s.respondentRepo.GetByStudyID(ctx, studyID)
}
