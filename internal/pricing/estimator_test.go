package pricing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordCounter is a deterministic stand-in for the tiktoken counter.
type wordCounter struct{}

func (wordCounter) Count(text, model string) (int, error) {
	return len(strings.Fields(text)), nil
}

func fixtureTable() Table {
	return Table{
		"test-model": {InputPer1K: 1.0, OutputPer1K: 2.0},
	}
}

func TestEstimatePrompt(t *testing.T) {
	e := NewEstimator(fixtureTable(), wordCounter{})

	// 10 words at $1/1K input + 3 output tokens at $2/1K.
	prompt := strings.Repeat("word ", 10)
	cost, err := e.EstimatePrompt(prompt, "test-model", 3)
	require.NoError(t, err)
	assert.InDelta(t, 10.0/1000*1.0+3.0/1000*2.0, cost, 1e-12)
}

func TestEstimatePromptUnknownModel(t *testing.T) {
	e := NewEstimator(fixtureTable(), wordCounter{})
	_, err := e.EstimatePrompt("hello", "no-such-model", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price table")
}

func TestEstimateBatch(t *testing.T) {
	e := NewEstimator(fixtureTable(), wordCounter{})

	prompts := []string{
		"one two three",
		"four five",
		"six",
	}
	total, err := e.EstimateBatch(context.Background(), prompts, "test-model", 3)
	require.NoError(t, err)

	var want float64
	for _, p := range prompts {
		c, err := e.EstimatePrompt(p, "test-model", 3)
		require.NoError(t, err)
		want += c
	}
	assert.InDelta(t, want, total, 1e-12)
}

func TestEstimateBatchUnknownModel(t *testing.T) {
	e := NewEstimator(fixtureTable(), wordCounter{})
	_, err := e.EstimateBatch(context.Background(), []string{"a"}, "missing", 3)
	assert.Error(t, err)
}

func TestEstimateBatchEmpty(t *testing.T) {
	e := NewEstimator(fixtureTable(), wordCounter{})
	total, err := e.EstimateBatch(context.Background(), nil, "test-model", 3)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDefaultTableLookup(t *testing.T) {
	table := DefaultTable()
	p, err := table.Lookup("gpt-4o-mini")
	require.NoError(t, err)
	assert.Greater(t, p.InputPer1K, 0.0)
	assert.Greater(t, p.OutputPer1K, p.InputPer1K)

	_, err = table.Lookup("made-up-model")
	assert.Error(t, err)
}
