package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/cache"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/collapse"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/groundtruth"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/repository"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/stats"
)

// ErrNoUsableData means no response survived filtering: every row was
// missing its collapse result or its ground truth.
var ErrNoUsableData = errors.New("no processed responses with usable ground truth found")

// MethodVoteReplication tags results of the logprob-collapsing
// pipeline. One row per (question, method).
const MethodVoteReplication = "vote_replication"

// metricRow is one retained (respondent, response) pair.
type metricRow struct {
	respondentID string
	realLabel    string
	realPos      int
	predLabel    string
	predPos      float64
	predDichot   int
	correct      int
	entropy      float64
	collapsed    map[string]float64
}

// MetricsService computes the per-question agreement statistics from
// persisted responses and respondent ground truth.
type MetricsService struct {
	studyRepo      repository.StudyRepo
	respondentRepo repository.RespondentRepo
	questionRepo   repository.QuestionRepo
	responseRepo   repository.ResponseRepo
	analysisRepo   repository.AnalysisRepo
	analysisCache  cache.AnalysisCache
}

func NewMetricsService(
	studyRepo repository.StudyRepo,
	respondentRepo repository.RespondentRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	analysisRepo repository.AnalysisRepo,
	analysisCache cache.AnalysisCache,
) *MetricsService {
	return &MetricsService{
		studyRepo:      studyRepo,
		respondentRepo: respondentRepo,
		questionRepo:   questionRepo,
		responseRepo:   responseRepo,
		analysisRepo:   analysisRepo,
		analysisCache:  analysisCache,
	}
}

// GetAnalysis returns the stored result for a question, preferring the
// cache.
func (s *MetricsService) GetAnalysis(ctx context.Context, questionID string) (*model.AnalysisData, error) {
	if s.analysisCache != nil {
		if data, err := s.analysisCache.GetAnalysis(ctx, questionID, MethodVoteReplication); err == nil && data != nil {
			return data, nil
		}
	}
	result, err := s.analysisRepo.GetByQuestionMethod(ctx, questionID, MethodVoteReplication)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &result.Result, nil
}

// GetResponses lists the raw model responses for a question, for
// inspection alongside the aggregate metrics.
func (s *MetricsService) GetResponses(ctx context.Context, studyID, questionID string) ([]*model.ModelResponse, error) {
	study, err := s.studyRepo.GetByID(ctx, studyID)
	if err != nil {
		return nil, err
	}
	if study == nil {
		return nil, ErrStudyNotFound
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil || question.StudyID != study.ID {
		return nil, ErrQuestionNotFound
	}
	return s.responseRepo.GetByQuestionID(ctx, questionID)
}

// Compute recalculates the metrics for one question and upserts the
// result. Recomputing is idempotent: the (question, method) row is
// overwritten, never duplicated.
func (s *MetricsService) Compute(ctx context.Context, studyID, questionID string) (*model.AnalysisData, error) {
	study, err := s.studyRepo.GetByID(ctx, studyID)
	if err != nil {
		return nil, err
	}
	if study == nil {
		return nil, ErrStudyNotFound
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil || question.StudyID != study.ID {
		return nil, ErrQuestionNotFound
	}

	respondents, err := s.respondentRepo.GetByStudyID(ctx, study.ID)
	if err != nil {
		return nil, err
	}
	respondentByID := make(map[string]*model.Respondent, len(respondents))
	for _, r := range respondents {
		respondentByID[r.ID] = r
	}

	responses, err := s.responseRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	positive := strings.ToLower(strings.TrimSpace(study.PositiveLabel))

	rows := make([]metricRow, 0, len(responses))
	for _, resp := range responses {
		respondent := respondentByID[resp.RespondentID]
		if respondent == nil {
			continue
		}

		collapsed := resp.Derived.CollapsedProbs
		if len(collapsed) == 0 {
			continue
		}

		realLabel, ok := groundtruth.Normalize(respondent.RealVote, study.Year)
		if !ok {
			continue
		}

		predLabel := resp.Derived.PredictedChoice
		if predLabel == "" {
			predLabel = collapse.Argmax(collapsed, resp.Derived.Options)
		}
		predLabel = strings.ToLower(strings.TrimSpace(predLabel))

		predPos := collapsed[positive]

		row := metricRow{
			respondentID: respondent.ID,
			realLabel:    realLabel,
			predLabel:    predLabel,
			predPos:      predPos,
			entropy:      stats.Entropy(collapsed),
			collapsed:    collapsed,
		}
		if realLabel == positive {
			row.realPos = 1
		}
		if predLabel == realLabel {
			row.correct = 1
		}
		if predPos > 0.50 {
			row.predDichot = 1
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoUsableData
	}

	data := s.aggregate(rows, positive)

	result := &model.AnalysisResult{
		QuestionID: questionID,
		Method:     MethodVoteReplication,
		Parameters: model.AnalysisParams{
			PositiveLabel: positive,
			Year:          study.Year,
		},
		Result: *data,
	}
	// Stale cached copies must not outlive the stored row.
	if s.analysisCache != nil {
		if err := s.analysisCache.InvalidateQuestion(ctx, questionID, MethodVoteReplication); err != nil {
			log.Printf("invalidate analysis for question %s: %v", questionID, err)
		}
	}

	if err := s.analysisRepo.Upsert(ctx, result); err != nil {
		return nil, err
	}
	if err := s.questionRepo.SetAnalyzed(ctx, questionID); err != nil {
		return nil, err
	}

	if s.analysisCache != nil {
		if err := s.analysisCache.SetAnalysis(ctx, questionID, MethodVoteReplication, data); err != nil {
			log.Printf("cache analysis for question %s: %v", questionID, err)
		}
	}

	return data, nil
}

func (s *MetricsService) aggregate(rows []metricRow, positive string) *model.AnalysisData {
	n := len(rows)

	accuracies := make([]float64, n)
	entropies := make([]float64, n)
	realPosF := make([]float64, n)
	predPosF := make([]float64, n)
	realPosI := make([]int, n)
	dichotI := make([]int, n)
	dists := make([]map[string]float64, n)
	byRespondent := make(map[string]map[string]float64, n)

	for i, row := range rows {
		accuracies[i] = float64(row.correct)
		entropies[i] = row.entropy
		realPosF[i] = float64(row.realPos)
		predPosF[i] = row.predPos
		realPosI[i] = row.realPos
		dichotI[i] = row.predDichot
		dists[i] = row.collapsed
		byRespondent[row.respondentID] = row.collapsed
	}

	data := &model.AnalysisData{
		N:                          n,
		PositiveLabel:              positive,
		CollapsedProbsByRespondent: byRespondent,
	}

	data.Accuracy = floatPtr(stats.Mean(accuracies))
	data.EntropyMean = floatPtr(stats.Mean(entropies))

	// MI between the question template and the output distribution:
	// entropy of the pooled distribution minus the mean per-respondent
	// entropy. All responses here share one question, so the group
	// marginal is the average of every collapsed distribution.
	marginal := stats.AverageDistributions(dists)
	marginalEntropy := stats.Entropy(marginal)
	miTemplate := 0.0
	for _, row := range rows {
		miTemplate += marginalEntropy - row.entropy
	}
	data.MutualInfoTemplateOutput = floatPtr(miTemplate / float64(n))

	// MI between the binary real vote and the model's positive
	// probability: H(Y) minus the mean binary entropy of p-hat.
	pY := stats.Mean(realPosF)
	condEntropy := 0.0
	for _, row := range rows {
		condEntropy += stats.BinaryEntropy(row.predPos)
	}
	data.MutualInfoRealVsPredProb = floatPtr(stats.BinaryEntropy(pY) - condEntropy/float64(n))

	if r, p, ok := stats.Pearson(realPosF, predPosF); ok {
		data.PearsonR = floatPtr(r)
		data.PearsonPValue = floatPtr(p)
	}
	if kappa, ok := stats.CohenKappa(realPosI, dichotI); ok {
		data.CohensKappa = floatPtr(kappa)
	}
	if phi, ok := stats.MatthewsCorr(realPosI, dichotI); ok {
		data.MatthewsCorr = floatPtr(phi)
	}

	return data
}

// floatPtr drops NaN and infinite values to nil so they never reach
// JSON or BSON.
func floatPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
