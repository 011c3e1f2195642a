package pricing

import "fmt"

// ModelPrice is the USD price per 1K tokens for one model.
type ModelPrice struct {
	InputPer1K  float64 `json:"inputPer1k"`
	OutputPer1K float64 `json:"outputPer1k"`
}

// Table maps model names to their prices. An unknown model is a
// configuration error, never silently priced at zero.
type Table map[string]ModelPrice

// Lookup returns the price entry for a model.
func (t Table) Lookup(model string) (ModelPrice, error) {
	p, ok := t[model]
	if !ok {
		return ModelPrice{}, fmt.Errorf("model %q not in price table", model)
	}
	return p, nil
}

// DefaultTable covers the chat models the pipeline is normally run
// against. Override per deployment via config when prices move.
func DefaultTable() Table {
	return Table{
		"gpt-5.1":       {InputPer1K: 0.00125, OutputPer1K: 0.01},
		"gpt-5":         {InputPer1K: 0.00125, OutputPer1K: 0.01},
		"gpt-5-mini":    {InputPer1K: 0.00025, OutputPer1K: 0.002},
		"gpt-5-nano":    {InputPer1K: 0.00005, OutputPer1K: 0.0004},
		"gpt-5-pro":     {InputPer1K: 0.015, OutputPer1K: 0.12},
		"gpt-4.1":       {InputPer1K: 0.002, OutputPer1K: 0.008},
		"gpt-4.1-mini":  {InputPer1K: 0.0004, OutputPer1K: 0.0016},
		"gpt-4.1-nano":  {InputPer1K: 0.0001, OutputPer1K: 0.0004},
		"gpt-4o":        {InputPer1K: 0.0025, OutputPer1K: 0.01},
		"gpt-4o-mini":   {InputPer1K: 0.00015, OutputPer1K: 0.0006},
		"gpt-3.5-turbo": {InputPer1K: 0.0005, OutputPer1K: 0.0015},
	}
}
