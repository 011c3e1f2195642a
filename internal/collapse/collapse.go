package collapse

import (
	"math"
	"strings"
)

// epsilon seeds every category before soft accumulation so a token map
// with no lexical matches still collapses to a valid (near-uniform)
// distribution instead of a hard zero.
const epsilon = 1e-12

// CategorySet binds a candidate label to its lexical surface forms.
type CategorySet struct {
	Label  string   `json:"label"`
	Tokens []string `json:"tokens"`
}

// TokenSets is an ordered list of candidate categories. Order matters:
// soft collapsing assigns each token to the first matching category, and
// argmax ties resolve to the earliest label, so results are reproducible.
type TokenSets []CategorySet

// Labels returns the candidate labels in configured order.
func (ts TokenSets) Labels() []string {
	labels := make([]string, len(ts))
	for i, cs := range ts {
		labels[i] = cs.Label
	}
	return labels
}

// NormalizeLogProbs converts token log-probabilities to probabilities
// summing to 1, subtracting the max before exponentiating so large
// negative log-probs don't underflow. Empty input yields an empty map.
func NormalizeLogProbs(logProbs map[string]float64) map[string]float64 {
	if len(logProbs) == 0 {
		return map[string]float64{}
	}

	maxv := math.Inf(-1)
	for _, lp := range logProbs {
		if lp > maxv {
			maxv = lp
		}
	}

	probs := make(map[string]float64, len(logProbs))
	var sum float64
	for tok, lp := range logProbs {
		e := math.Exp(lp - maxv)
		probs[tok] = e
		sum += e
	}
	for tok := range probs {
		probs[tok] /= sum
	}
	return probs
}

// CollapseExact sums the probability mass of tokens that are exact
// members of each category's token list and renormalizes. When no token
// belongs to any category the result is all zeros, not a division by
// zero.
func CollapseExact(probs map[string]float64, sets TokenSets) map[string]float64 {
	sums := make(map[string]float64, len(sets))
	var total float64
	for _, cs := range sets {
		var s float64
		for _, t := range cs.Tokens {
			if p, ok := probs[t]; ok {
				s += p
			}
		}
		sums[cs.Label] = s
		total += s
	}

	if total <= 0 {
		for k := range sums {
			sums[k] = 0
		}
		return sums
	}
	for k := range sums {
		sums[k] /= total
	}
	return sums
}

// CollapseSoft assigns each observed token's mass to the first category
// (in configured order) with a reference token that prefix- or
// substring-matches it after case-folding and trimming. Model output
// tokens are sub-word fragments, so "Rom" must still count for
// "Romney". Every category is seeded with epsilon, so the result always
// contains every label with probability > 0 and sums to 1.
func CollapseSoft(probs map[string]float64, sets TokenSets) map[string]float64 {
	out := make(map[string]float64, len(sets))
	for _, cs := range sets {
		out[cs.Label] = epsilon
	}

	for tok, p := range probs {
		tokNorm := strings.TrimSpace(strings.ToLower(tok))
		if tokNorm == "" {
			continue
		}

	match:
		for _, cs := range sets {
			for _, ref := range cs.Tokens {
				refNorm := strings.TrimSpace(strings.ToLower(ref))
				if refNorm == "" {
					continue
				}
				if strings.HasPrefix(tokNorm, refNorm) ||
					strings.HasPrefix(refNorm, tokNorm) ||
					strings.Contains(tokNorm, refNorm) {
					out[cs.Label] += p
					break match
				}
			}
		}
	}

	var z float64
	for _, v := range out {
		z += v
	}
	if z == 0 {
		return out
	}
	for k := range out {
		out[k] /= z
	}
	return out
}

// Argmax returns the highest-probability label. Ties resolve to the
// label appearing first in order; labels missing from probs count as
// absent. Returns "" for an empty distribution.
func Argmax(probs map[string]float64, order []string) string {
	best := ""
	bestP := math.Inf(-1)
	for _, label := range order {
		p, ok := probs[label]
		if !ok {
			continue
		}
		if p > bestP {
			best = label
			bestP = p
		}
	}
	if best != "" {
		return best
	}
	// No order supplied (or none of it present): fall back to any max.
	for label, p := range probs {
		if p > bestP || best == "" {
			best = label
			bestP = p
		}
	}
	return best
}
