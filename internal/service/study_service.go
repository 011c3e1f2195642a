package service

import (
	"context"
	"errors"
	"io"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/ingest"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/repository"
)

// Ground-truth normalization rules and default candidate sets exist
// only for these election years.
var supportedYears = map[int]bool{2012: true, 2016: true, 2020: true}

var ErrUnsupportedYear = errors.New("unsupported study year")

// StudyService handles study and question CRUD operations
type StudyService struct {
	studyRepo    repository.StudyRepo
	questionRepo repository.QuestionRepo
	costRepo     repository.CostRepo
}

// NewStudyService creates a new study service
func NewStudyService(studyRepo repository.StudyRepo, questionRepo repository.QuestionRepo, costRepo repository.CostRepo) *StudyService {
	return &StudyService{
		studyRepo:    studyRepo,
		questionRepo: questionRepo,
		costRepo:     costRepo,
	}
}

// Create creates a new study
func (s *StudyService) Create(ctx context.Context, study *model.Study) (string, error) {
	if !supportedYears[study.Year] {
		return "", ErrUnsupportedYear
	}
	study.Status = model.StudyStatusDraft
	if err := s.studyRepo.Create(ctx, study); err != nil {
		return "", err
	}
	return study.ID, nil
}

// GetByID retrieves a study by ID
func (s *StudyService) GetByID(ctx context.Context, id string) (*model.Study, error) {
	return s.studyRepo.GetByID(ctx, id)
}

// GetByHostID retrieves all studies for a host
func (s *StudyService) GetByHostID(ctx context.Context, hostID string) ([]*model.Study, error) {
	return s.studyRepo.GetByHostID(ctx, hostID)
}

// Update changes a study's title or description. Year and positive
// label are fixed after creation: responses and analyses already
// computed under them would be invalidated by a change.
func (s *StudyService) Update(ctx context.Context, id, title, description string) (*model.Study, error) {
	study, err := s.studyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if study == nil {
		return nil, ErrStudyNotFound
	}

	if title != "" {
		study.Title = title
	}
	if description != "" {
		study.Description = description
	}
	if err := s.studyRepo.Update(ctx, study); err != nil {
		return nil, err
	}
	return study, nil
}

// Delete deletes a study
func (s *StudyService) Delete(ctx context.Context, id string) error {
	return s.studyRepo.Delete(ctx, id)
}

// AddQuestion attaches a question to a study
func (s *StudyService) AddQuestion(ctx context.Context, question *model.Question) (string, error) {
	study, err := s.studyRepo.GetByID(ctx, question.StudyID)
	if err != nil {
		return "", err
	}
	if study == nil {
		return "", ErrStudyNotFound
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return "", err
	}
	return question.ID, nil
}

// ImportQuestionsCSV bulk-creates questions from a CSV whose first
// column holds the question stems.
func (s *StudyService) ImportQuestionsCSV(ctx context.Context, studyID string, r io.Reader) (int, error) {
	study, err := s.studyRepo.GetByID(ctx, studyID)
	if err != nil {
		return 0, err
	}
	if study == nil {
		return 0, ErrStudyNotFound
	}

	stems, err := ingest.ParseQuestions(r)
	if err != nil {
		return 0, err
	}
	if len(stems) == 0 {
		return 0, errors.New("question file has no rows")
	}
	for _, body := range stems {
		if err := s.questionRepo.Create(ctx, &model.Question{StudyID: studyID, Body: body}); err != nil {
			return 0, err
		}
	}
	return len(stems), nil
}

// GetQuestions lists a study's questions
func (s *StudyService) GetQuestions(ctx context.Context, studyID string) ([]*model.Question, error) {
	return s.questionRepo.GetByStudyID(ctx, studyID)
}

// GetQuestion retrieves a single question
func (s *StudyService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// TotalCost sums all persisted run costs for a study
func (s *StudyService) TotalCost(ctx context.Context, studyID string) (float64, error) {
	return s.costRepo.TotalByStudyID(ctx, studyID)
}
