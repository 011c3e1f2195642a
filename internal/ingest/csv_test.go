package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRespondents(t *testing.T) {
	data := `ext_id,age,gender,education,state,party,real_vote,favorite_color
v001,45,Male,college,Texas,Republican,Donald Trump,blue
v002,,Female,high school,Ohio,Democrat,Hillary Clinton,
`
	respondents, err := ParseRespondents(strings.NewReader(data), "study1", "anes2016")
	require.NoError(t, err)
	require.Len(t, respondents, 2)

	first := respondents[0]
	assert.Equal(t, "study1", first.StudyID)
	assert.Equal(t, "anes2016", first.DatasetName)
	assert.Equal(t, "v001", first.ExtID)
	require.NotNil(t, first.Age)
	assert.Equal(t, 45, *first.Age)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, "Texas", first.State)
	assert.Equal(t, "Donald Trump", first.RealVote)
	assert.Equal(t, map[string]string{"favorite_color": "blue"}, first.MoreInfo)

	second := respondents[1]
	assert.Nil(t, second.Age)
	assert.Equal(t, "Hillary Clinton", second.RealVote)
	assert.Nil(t, second.MoreInfo)
}

func TestParseRespondentsHeaderVariants(t *testing.T) {
	data := "Ext ID,Political Interest\nv1,very interested\n"
	respondents, err := ParseRespondents(strings.NewReader(data), "s", "d")
	require.NoError(t, err)
	assert.Equal(t, "v1", respondents[0].ExtID)
	assert.Equal(t, "very interested", respondents[0].PoliticalInterest)
}

func TestParseRespondentsBadAge(t *testing.T) {
	data := "age\nforty\n"
	_, err := ParseRespondents(strings.NewReader(data), "s", "d")
	assert.Error(t, err)
}

func TestParseRespondentsEmpty(t *testing.T) {
	_, err := ParseRespondents(strings.NewReader("age,gender\n"), "s", "d")
	assert.Error(t, err)
}

func TestParseQuestions(t *testing.T) {
	data := "Who would you vote for?\n\"If the election were today, what then?\",extra\n"
	questions, err := ParseQuestions(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Who would you vote for?",
		"If the election were today, what then?",
	}, questions)
}
