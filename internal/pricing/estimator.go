package pricing

import (
	"context"

	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/errgroup"
)

// fallbackEncoding is used when a model name has no registered
// tokenizer. cl100k_base is the encoding shared by the gpt-3.5/gpt-4
// families, so counts stay close even for unrecognized names.
const fallbackEncoding = "cl100k_base"

// TokenCounter counts subword tokens in text for a given model.
// Injected so tests and offline tools can swap in a deterministic
// counter.
type TokenCounter interface {
	Count(text, model string) (int, error)
}

// TiktokenCounter counts with the model's own BPE encoding.
type TiktokenCounter struct{}

func (TiktokenCounter) Count(text, model string) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, err
		}
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// Estimator computes deterministic, side-effect-free cost estimates
// from prompt text. Carries its own price table and counter instead of
// reading globals, so fixture tables work in tests and prices can vary
// per study.
type Estimator struct {
	prices  Table
	counter TokenCounter
}

// NewEstimator builds an estimator. A nil counter defaults to tiktoken.
func NewEstimator(prices Table, counter TokenCounter) *Estimator {
	if counter == nil {
		counter = TiktokenCounter{}
	}
	return &Estimator{prices: prices, counter: counter}
}

// CountTokens exposes the underlying counter, used by the sampler as a
// usage fallback when the model service reports no token counts.
func (e *Estimator) CountTokens(text, model string) (int, error) {
	return e.counter.Count(text, model)
}

// EstimatePrompt estimates the USD cost of one call:
// inputTokens/1000 * inputPrice + maxOutputTokens/1000 * outputPrice.
func (e *Estimator) EstimatePrompt(prompt, model string, maxOutputTokens int) (float64, error) {
	price, err := e.prices.Lookup(model)
	if err != nil {
		return 0, err
	}
	n, err := e.counter.Count(prompt, model)
	if err != nil {
		return 0, err
	}
	inCost := float64(n) / 1000.0 * price.InputPer1K
	outCost := float64(maxOutputTokens) / 1000.0 * price.OutputPer1K
	return inCost + outCost, nil
}

// EstimateBatch sums EstimatePrompt over all prompts. Counting is pure,
// so prompts are tokenized concurrently.
func (e *Estimator) EstimateBatch(ctx context.Context, prompts []string, model string, maxOutputTokens int) (float64, error) {
	if _, err := e.prices.Lookup(model); err != nil {
		return 0, err
	}

	costs := make([]float64, len(prompts))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, p := range prompts {
		g.Go(func() error {
			c, err := e.EstimatePrompt(p, model, maxOutputTokens)
			if err != nil {
				return err
			}
			costs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, c := range costs {
		total += c
	}
	return total, nil
}
