package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
)

// In-memory repository fakes. Mutex-guarded so detached runs and
// assertions can overlap.

type memStudyRepo struct {
	mu      sync.Mutex
	studies map[string]*model.Study
}

func newMemStudyRepo() *memStudyRepo {
	return &memStudyRepo{studies: make(map[string]*model.Study)}
}

func (m *memStudyRepo) Create(ctx context.Context, study *model.Study) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if study.ID == "" {
		study.ID = fmt.Sprintf("study-%d", len(m.studies)+1)
	}
	if study.Status == "" {
		study.Status = model.StudyStatusDraft
	}
	m.studies[study.ID] = study
	return nil
}

func (m *memStudyRepo) GetByID(ctx context.Context, id string) (*model.Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.studies[id], nil
}

func (m *memStudyRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Study
	for _, s := range m.studies {
		if s.HostID == hostID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStudyRepo) Update(ctx context.Context, study *model.Study) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.studies[study.ID] = study
	return nil
}

func (m *memStudyRepo) UpdateStatus(ctx context.Context, id string, status model.StudyStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.studies[id]; ok {
		s.Status = status
	}
	return nil
}

func (m *memStudyRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.studies, id)
	return nil
}

type memRespondentRepo struct {
	mu          sync.Mutex
	respondents []*model.Respondent
}

func (m *memRespondentRepo) Create(ctx context.Context, r *model.Respondent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = fmt.Sprintf("resp-%d", len(m.respondents)+1)
	}
	m.respondents = append(m.respondents, r)
	return nil
}

func (m *memRespondentRepo) CreateMany(ctx context.Context, rs []*model.Respondent) error {
	for _, r := range rs {
		if err := m.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m *memRespondentRepo) GetByID(ctx context.Context, id string) (*model.Respondent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.respondents {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRespondentRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.Respondent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Respondent
	for _, r := range m.respondents {
		if r.StudyID == studyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRespondentRepo) CountByStudyID(ctx context.Context, studyID string) (int64, error) {
	rs, _ := m.GetByStudyID(ctx, studyID)
	return int64(len(rs)), nil
}

func (m *memRespondentRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type memQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{questions: make(map[string]*model.Question)}
}

func (m *memQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID == "" {
		q.ID = fmt.Sprintf("q-%d", len(m.questions)+1)
	}
	m.questions[q.ID] = q
	return nil
}

func (m *memQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questions[id], nil
}

func (m *memQuestionRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Question
	for _, q := range m.questions {
		if q.StudyID == studyID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memQuestionRepo) SetAnswered(ctx context.Context, id string, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.questions[id]; ok {
		q.Answered = true
		q.ModelName = modelName
	}
	return nil
}

func (m *memQuestionRepo) SetAnalyzed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.questions[id]; ok {
		q.Analyzed = true
	}
	return nil
}

func (m *memQuestionRepo) AllAnswered(ctx context.Context, studyID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.questions {
		if q.StudyID == studyID && !q.Answered {
			return false, nil
		}
	}
	return true, nil
}

func (m *memQuestionRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.questions, id)
	return nil
}

type memPromptRepo struct {
	mu      sync.Mutex
	prompts []*model.GeneratedPrompt
}

func (m *memPromptRepo) Create(ctx context.Context, p *model.GeneratedPrompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = fmt.Sprintf("prompt-%d", len(m.prompts)+1)
	m.prompts = append(m.prompts, p)
	return nil
}

func (m *memPromptRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.GeneratedPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.GeneratedPrompt
	for _, p := range m.prompts {
		if p.QuestionID == questionID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memResponseRepo struct {
	mu        sync.Mutex
	responses []*model.ModelResponse
}

func (m *memResponseRepo) Create(ctx context.Context, r *model.ModelResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = fmt.Sprintf("response-%d", len(m.responses)+1)
	m.responses = append(m.responses, r)
	return nil
}

func (m *memResponseRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.ModelResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ModelResponse
	for _, r := range m.responses {
		if r.QuestionID == questionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memResponseRepo) CountByQuestionID(ctx context.Context, questionID string) (int64, error) {
	rs, _ := m.GetByQuestionID(ctx, questionID)
	return int64(len(rs)), nil
}

type memCostRepo struct {
	mu    sync.Mutex
	costs []*model.CostRecord
}

func (m *memCostRepo) Create(ctx context.Context, c *model.CostRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = fmt.Sprintf("cost-%d", len(m.costs)+1)
	m.costs = append(m.costs, c)
	return nil
}

func (m *memCostRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.CostRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.CostRecord
	for _, c := range m.costs {
		if c.StudyID == studyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCostRepo) TotalByStudyID(ctx context.Context, studyID string) (float64, error) {
	cs, _ := m.GetByStudyID(ctx, studyID)
	total := 0.0
	for _, c := range cs {
		total += c.TotalCost
	}
	return total, nil
}

type memRunLogRepo struct {
	mu      sync.Mutex
	entries []*model.RunLog
}

func (m *memRunLogRepo) Create(ctx context.Context, e *model.RunLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = fmt.Sprintf("log-%d", len(m.entries)+1)
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRunLogRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.RunLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.RunLog
	for _, e := range m.entries {
		if e.StudyID == studyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memAnalysisRepo struct {
	mu      sync.Mutex
	results map[string]*model.AnalysisResult // key: questionID|method
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{results: make(map[string]*model.AnalysisResult)}
}

func (m *memAnalysisRepo) Upsert(ctx context.Context, result *model.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.QuestionID+"|"+result.Method] = result
	return nil
}

func (m *memAnalysisRepo) GetByQuestionMethod(ctx context.Context, questionID, method string) (*model.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[questionID+"|"+method], nil
}

func (m *memAnalysisRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AnalysisResult
	for _, r := range m.results {
		if r.QuestionID == questionID {
			out = append(out, r)
		}
	}
	return out, nil
}

// memAnalysisCache records cache traffic for assertions.
type memAnalysisCache struct {
	mu          sync.Mutex
	store       map[string]*model.AnalysisData
	invalidated int
}

func newMemAnalysisCache() *memAnalysisCache {
	return &memAnalysisCache{store: make(map[string]*model.AnalysisData)}
}

func (c *memAnalysisCache) GetAnalysis(ctx context.Context, questionID, method string) (*model.AnalysisData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[questionID+"|"+method], nil
}

func (c *memAnalysisCache) SetAnalysis(ctx context.Context, questionID, method string, data *model.AnalysisData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[questionID+"|"+method] = data
	return nil
}

func (c *memAnalysisCache) InvalidateQuestion(ctx context.Context, questionID, method string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, questionID+"|"+method)
	c.invalidated++
	return nil
}

// stubGenerator returns canned logprobs per respondent index and can
// fail partway through a run.
type stubGenerator struct {
	mu       sync.Mutex
	calls    int
	failAt   int // fail on the Nth call (1-based); 0 means never
	logprobs []map[string]float64
}

func (g *stubGenerator) Generate(ctx context.Context, model, prompt string, maxTokens, topLogprobs int, temperature float64) (*Generation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failAt > 0 && g.calls == g.failAt {
		return nil, fmt.Errorf("model backend unavailable")
	}
	lp := g.logprobs[(g.calls-1)%len(g.logprobs)]
	return &Generation{
		Text:             "trump",
		TopLogprobs:      lp,
		PromptTokens:     100,
		CompletionTokens: 1,
		UsageKnown:       true,
	}, nil
}

// wordCounter sidesteps tiktoken downloads in tests.
type wordCounter struct{}

func (wordCounter) Count(text, model string) (int, error) {
	return len(strings.Fields(text)), nil
}
