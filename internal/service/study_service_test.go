package service

import (
	"context"
	"strings"
	"testing"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyCreateRejectsUnknownYear(t *testing.T) {
	svc := NewStudyService(newMemStudyRepo(), newMemQuestionRepo(), &memCostRepo{})

	_, err := svc.Create(context.Background(), &model.Study{
		HostID: "h", Title: "t", Year: 2008, PositiveLabel: "obama",
	})
	assert.ErrorIs(t, err, ErrUnsupportedYear)

	id, err := svc.Create(context.Background(), &model.Study{
		HostID: "h", Title: "t", Year: 2020, PositiveLabel: "biden",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	study, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StudyStatusDraft, study.Status)
}

func TestStudyUpdateKeepsYearAndLabel(t *testing.T) {
	svc := NewStudyService(newMemStudyRepo(), newMemQuestionRepo(), &memCostRepo{})

	id, err := svc.Create(context.Background(), &model.Study{
		HostID: "h", Title: "before", Year: 2016, PositiveLabel: "trump",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), id, "after", "new description")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, 2016, updated.Year)
	assert.Equal(t, "trump", updated.PositiveLabel)
	assert.Equal(t, model.StudyStatusDraft, updated.Status)

	// Empty fields leave the current values alone.
	updated, err = svc.Update(context.Background(), id, "", "")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)

	_, err = svc.Update(context.Background(), "ghost", "x", "")
	assert.ErrorIs(t, err, ErrStudyNotFound)
}

func TestQuestionImportCSV(t *testing.T) {
	svc := NewStudyService(newMemStudyRepo(), newMemQuestionRepo(), &memCostRepo{})

	id, err := svc.Create(context.Background(), &model.Study{
		HostID: "h", Title: "t", Year: 2020, PositiveLabel: "biden",
	})
	require.NoError(t, err)

	csv := "If the election were held today, who would you vote for?\n\"Thinking back, who did you support?\"\n"
	count, err := svc.ImportQuestionsCSV(context.Background(), id, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	questions, err := svc.GetQuestions(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Equal(t, id, q.StudyID)
		assert.False(t, q.Answered)
	}

	question, err := svc.GetQuestion(context.Background(), questions[0].ID)
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, questions[0].Body, question.Body)

	_, err = svc.ImportQuestionsCSV(context.Background(), "ghost", strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrStudyNotFound)

	_, err = svc.ImportQuestionsCSV(context.Background(), id, strings.NewReader(""))
	assert.Error(t, err)
}

func TestStudyAddQuestionRequiresStudy(t *testing.T) {
	svc := NewStudyService(newMemStudyRepo(), newMemQuestionRepo(), &memCostRepo{})

	_, err := svc.AddQuestion(context.Background(), &model.Question{StudyID: "ghost", Body: "?"})
	assert.ErrorIs(t, err, ErrStudyNotFound)
}

func TestRespondentImportCSV(t *testing.T) {
	studies := newMemStudyRepo()
	study := &model.Study{HostID: "h", Title: "t", Year: 2016, PositiveLabel: "trump"}
	require.NoError(t, studies.Create(context.Background(), study))

	svc := NewRespondentService(studies, &memRespondentRepo{})

	csv := "age,gender,real_vote\n44,Male,Donald Trump\n61,Female,Hillary Clinton\n"
	count, err := svc.ImportCSV(context.Background(), study.ID, "anes2016", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	respondents, err := svc.GetByStudyID(context.Background(), study.ID)
	require.NoError(t, err)
	require.Len(t, respondents, 2)
	assert.Equal(t, "anes2016", respondents[0].DatasetName)

	_, err = svc.ImportCSV(context.Background(), "ghost", "d", strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrStudyNotFound)
}

func TestAuthLoginAndValidate(t *testing.T) {
	svc := NewAuthService()

	resp, err := svc.Login("admin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, strings.HasPrefix(resp.HostID, "host_"))

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.HostID, claims.HostID)

	_, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
