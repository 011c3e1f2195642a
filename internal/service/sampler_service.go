package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/collapse"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/config"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/pricing"
	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrStudyNotFound    = errors.New("study not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoRespondents    = errors.New("study has no respondents")
	ErrRunInProgress    = errors.New("a run is already in progress for this study")
)

// RunParams configures one sampling run.
type RunParams struct {
	StudyID    string
	QuestionID string

	// TokenSets defines the candidates and their lexical variants. Empty
	// means use the defaults for the study year.
	TokenSets collapse.TokenSets

	// Model overrides the configured default when set.
	Model       string
	Temperature float64

	// CostOnly quotes the run without calling the model or persisting
	// anything.
	CostOnly bool
}

// RunResult summarizes a finished (or quoted) run.
type RunResult struct {
	TotalCost   float64 `json:"totalCost"`
	Respondents int     `json:"respondents"`
	ModelName   string  `json:"modelName"`
	CostOnly    bool    `json:"costOnly"`
}

// SamplerService runs a question across every respondent of a study:
// prompt rendering, cost estimation, model calls, probability
// collapsing and persistence of each artifact.
type SamplerService struct {
	studyRepo      repository.StudyRepo
	respondentRepo repository.RespondentRepo
	questionRepo   repository.QuestionRepo
	promptRepo     repository.PromptRepo
	responseRepo   repository.ResponseRepo
	costRepo       repository.CostRepo
	runLogRepo     repository.RunLogRepo

	aiConfig  *config.AIConfig
	generator Generator
	estimator *pricing.Estimator
	prompts   *PromptBuilder

	broadcaster Broadcaster

	// One run at a time per study.
	mu        sync.Mutex
	activeRun map[string]bool
}

func NewSamplerService(
	studyRepo repository.StudyRepo,
	respondentRepo repository.RespondentRepo,
	questionRepo repository.QuestionRepo,
	promptRepo repository.PromptRepo,
	responseRepo repository.ResponseRepo,
	costRepo repository.CostRepo,
	runLogRepo repository.RunLogRepo,
	aiConfig *config.AIConfig,
	generator Generator,
	estimator *pricing.Estimator,
) *SamplerService {
	return &SamplerService{
		studyRepo:      studyRepo,
		respondentRepo: respondentRepo,
		questionRepo:   questionRepo,
		promptRepo:     promptRepo,
		responseRepo:   responseRepo,
		costRepo:       costRepo,
		runLogRepo:     runLogRepo,
		aiConfig:       aiConfig,
		generator:      generator,
		estimator:      estimator,
		prompts:        NewPromptBuilder(),
		activeRun:      make(map[string]bool),
	}
}

// SetBroadcaster wires the WebSocket hub after construction (avoids
// import cycle).
func (s *SamplerService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Run executes one sampling run. With CostOnly it returns the quote
// and touches nothing. Otherwise every respondent is sampled in order;
// artifacts persisted before a failure are kept.
func (s *SamplerService) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	study, err := s.studyRepo.GetByID(ctx, params.StudyID)
	if err != nil {
		return nil, err
	}
	if study == nil {
		return nil, ErrStudyNotFound
	}

	question, err := s.questionRepo.GetByID(ctx, params.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil || question.StudyID != study.ID {
		return nil, ErrQuestionNotFound
	}

	tokenSets := params.TokenSets
	if len(tokenSets) == 0 {
		tokenSets, err = collapse.DefaultTokenSets(study.Year)
		if err != nil {
			return nil, err
		}
	}

	modelName := params.Model
	if modelName == "" {
		modelName = question.ModelName
	}
	if modelName == "" {
		modelName = s.aiConfig.DefaultModel
	}

	respondents, err := s.respondentRepo.GetByStudyID(ctx, study.ID)
	if err != nil {
		return nil, err
	}
	if len(respondents) == 0 {
		return nil, ErrNoRespondents
	}

	options := tokenSets.Labels()

	// Prompts render concurrently; model calls stay sequential below.
	promptTexts := make([]string, len(respondents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, respondent := range respondents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			backstory := s.prompts.BuildBackstory(respondent)
			text, err := s.prompts.BuildPrompt(backstory, question.Body, options)
			if err != nil {
				return fmt.Errorf("respondent %s: %w", respondent.ID, err)
			}
			promptTexts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalCost, err := s.estimator.EstimateBatch(ctx, promptTexts, modelName, s.aiConfig.MaxOutputTokens)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		TotalCost:   totalCost,
		Respondents: len(respondents),
		ModelName:   modelName,
		CostOnly:    params.CostOnly,
	}
	if params.CostOnly {
		return result, nil
	}

	if !s.acquireRun(study.ID) {
		return nil, ErrRunInProgress
	}
	defer s.releaseRun(study.ID)

	if err := s.studyRepo.UpdateStatus(ctx, study.ID, model.StudyStatusRunning); err != nil {
		return nil, err
	}
	s.broadcast(study.ID, EventRunStarted, map[string]interface{}{
		"questionId":  question.ID,
		"respondents": len(respondents),
		"modelName":   modelName,
	})

	if err := s.costRepo.Create(ctx, &model.CostRecord{
		StudyID:    study.ID,
		QuestionID: question.ID,
		ModelName:  modelName,
		TotalCost:  totalCost,
	}); err != nil {
		return nil, s.failRun(ctx, study.ID, question.ID, err)
	}

	for i, respondent := range respondents {
		if err := ctx.Err(); err != nil {
			return nil, s.failRun(ctx, study.ID, question.ID, err)
		}

		if err := s.sampleOne(ctx, study, question, respondent, promptTexts[i], tokenSets, modelName, params.Temperature); err != nil {
			return nil, s.failRun(ctx, study.ID, question.ID, err)
		}

		s.broadcast(study.ID, EventRespondentSampled, map[string]interface{}{
			"questionId":   question.ID,
			"respondentId": respondent.ID,
			"done":         i + 1,
			"total":        len(respondents),
		})
	}

	if err := s.questionRepo.SetAnswered(ctx, question.ID, modelName); err != nil {
		return nil, s.failRun(ctx, study.ID, question.ID, err)
	}

	allAnswered, err := s.questionRepo.AllAnswered(ctx, study.ID)
	if err != nil {
		return nil, s.failRun(ctx, study.ID, question.ID, err)
	}
	if allAnswered {
		if err := s.studyRepo.UpdateStatus(ctx, study.ID, model.StudyStatusCompleted); err != nil {
			return nil, err
		}
	}

	s.broadcast(study.ID, EventRunCompleted, map[string]interface{}{
		"questionId": question.ID,
		"totalCost":  totalCost,
	})

	return result, nil
}

// sampleOne handles a single respondent: persist the prompt, call the
// model, collapse the first token's alternatives and persist the
// response plus its audit entry.
func (s *SamplerService) sampleOne(
	ctx context.Context,
	study *model.Study,
	question *model.Question,
	respondent *model.Respondent,
	promptText string,
	tokenSets collapse.TokenSets,
	modelName string,
	temperature float64,
) error {
	if err := s.promptRepo.Create(ctx, &model.GeneratedPrompt{
		StudyID:      study.ID,
		QuestionID:   question.ID,
		RespondentID: respondent.ID,
		Body:         promptText,
	}); err != nil {
		return err
	}

	gen, err := s.generator.Generate(ctx, modelName, promptText, s.aiConfig.MaxOutputTokens, s.aiConfig.TopLogprobs, temperature)
	if err != nil {
		return fmt.Errorf("respondent %s: %w", respondent.ID, err)
	}

	tokenProbs := collapse.NormalizeLogProbs(gen.TopLogprobs)
	collapsed := collapse.CollapseSoft(tokenProbs, tokenSets)
	options := tokenSets.Labels()
	predicted := collapse.Argmax(collapsed, options)

	var confidence *float64
	if predicted != "" {
		if p, ok := collapsed[predicted]; ok {
			confidence = &p
		}
	}

	if err := s.responseRepo.Create(ctx, &model.ModelResponse{
		QuestionID:   question.ID,
		RespondentID: respondent.ID,
		RawResponse:  gen.Text,
		Derived: model.ResponseDerivation{
			TokenLogprobs:   gen.TopLogprobs,
			TokenProbs:      tokenProbs,
			CollapsedProbs:  collapsed,
			PredictedChoice: predicted,
			Options:         options,
		},
		Confidence: confidence,
		ModelName:  modelName,
	}); err != nil {
		return err
	}

	tokensUsed := 0
	if gen.UsageKnown {
		tokensUsed = gen.PromptTokens + gen.CompletionTokens
	} else {
		n, err := s.estimator.CountTokens(promptText, modelName)
		if err != nil {
			return err
		}
		tokensUsed = n + s.aiConfig.MaxOutputTokens
	}

	return s.runLogRepo.Create(ctx, &model.RunLog{
		StudyID:      study.ID,
		RespondentID: respondent.ID,
		PromptText:   promptText,
		ResponseText: gen.Text,
		ModelName:    modelName,
		TokensUsed:   tokensUsed,
		Temperature:  temperature,
	})
}

// failRun marks the study failed and wraps the original error. Rows
// persisted before the failure stay in place.
func (s *SamplerService) failRun(ctx context.Context, studyID, questionID string, cause error) error {
	if err := s.studyRepo.UpdateStatus(ctx, studyID, model.StudyStatusFailed); err != nil {
		log.Printf("mark study %s failed: %v", studyID, err)
	}
	s.broadcast(studyID, EventRunFailed, map[string]interface{}{
		"questionId": questionID,
		"error":      cause.Error(),
	})
	return fmt.Errorf("sampling run for question %s: %w", questionID, cause)
}

func (s *SamplerService) broadcast(studyID, msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStudy(studyID, msgType, payload)
	}
}

func (s *SamplerService) acquireRun(studyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeRun[studyID] {
		return false
	}
	s.activeRun[studyID] = true
	return true
}

func (s *SamplerService) releaseRun(studyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeRun, studyID)
}
