package collapse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Variants expands canonical candidate names into the lexical surface
// forms a tokenizer can emit mid-sentence: lower-case, UPPER-CASE and
// Capitalized, each with a leading space.
//
//	Variants([]string{"trump"}) -> [" trump", " TRUMP", " Trump"]
func Variants(names []string) []string {
	out := make([]string, 0, len(names)*3)
	for _, n := range names {
		out = append(out,
			" "+strings.ToLower(n),
			" "+strings.ToUpper(n),
			" "+capitalize(n),
		)
	}
	return out
}

func capitalize(s string) string {
	lower := strings.ToLower(s)
	if lower == "" {
		return lower
	}
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// DefaultTokenSets returns the candidate token sets for a study year.
// An unknown year is a configuration error.
func DefaultTokenSets(year int) (TokenSets, error) {
	switch year {
	case 2012:
		return TokenSets{
			{Label: "romney", Tokens: Variants([]string{"romney", "mitt", "republican", "conservative"})},
			{Label: "obama", Tokens: Variants([]string{"obama", "barack", "democrat", "democratic", "liberal"})},
		}, nil
	case 2016:
		return TokenSets{
			{Label: "trump", Tokens: Variants([]string{"trump", "donald", "republican", "conservative"})},
			{Label: "clinton", Tokens: Variants([]string{"clinton", "hillary", "rodham", "democrat", "liberal"})},
		}, nil
	case 2020:
		return TokenSets{
			{Label: "trump", Tokens: Variants([]string{"donald", "trump", "republican", "conservative"})},
			{Label: "biden", Tokens: Variants([]string{"joe", "biden", "democrat", "liberal"})},
		}, nil
	}
	return nil, fmt.Errorf("no default token sets defined for year %d", year)
}
