package groundtruth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMissingMarkers(t *testing.T) {
	cases := []string{
		"Did not vote for President",
		"2. Did not report vote",
		"Inapplicable",
		"Refused",
		"MISSING, NO VOTE FOR PRES",
		"no post-election data available",
		"",
		"   ",
	}
	for _, raw := range cases {
		_, ok := Normalize(raw, 2016)
		assert.False(t, ok, "expected %q to be absent", raw)
	}
}

func TestNormalize2012(t *testing.T) {
	label, ok := Normalize("Barack Obama", 2012)
	assert.True(t, ok)
	assert.Equal(t, "obama", label)

	label, ok = Normalize("1. Mitt Romney", 2012)
	assert.True(t, ok)
	assert.Equal(t, "romney", label)

	label, ok = Normalize("Other {SPECIFY}", 2012)
	assert.True(t, ok)
	assert.Equal(t, "other", label)
}

func TestNormalize2016(t *testing.T) {
	label, ok := Normalize("Donald J. Trump", 2016)
	assert.True(t, ok)
	assert.Equal(t, "trump", label)

	label, ok = Normalize("2. Hillary Clinton", 2016)
	assert.True(t, ok)
	assert.Equal(t, "clinton", label)

	for _, raw := range []string{"Jill Stein", "Gary Johnson", "Other candidate {SPECIFY}"} {
		label, ok = Normalize(raw, 2016)
		assert.True(t, ok, raw)
		assert.Equal(t, "other", label)
	}
}

func TestNormalize2020(t *testing.T) {
	label, ok := Normalize("Joe Biden", 2020)
	assert.True(t, ok)
	assert.Equal(t, "biden", label)

	label, ok = Normalize("Donald Trump", 2020)
	assert.True(t, ok)
	assert.Equal(t, "trump", label)

	label, ok = Normalize("Jo Jorgensen", 2020)
	assert.True(t, ok)
	assert.Equal(t, "other", label)

	label, ok = Normalize("Howie Hawkins", 2020)
	assert.True(t, ok)
	assert.Equal(t, "other", label)
}

func TestNormalizeUnrecognized(t *testing.T) {
	_, ok := Normalize("write-in: mickey mouse", 2016)
	assert.False(t, ok)

	// Unknown year is absent, not a panic.
	_, ok = Normalize("Barack Obama", 2008)
	assert.False(t, ok)

	// Bare surname without first name does not match the 2016 rules.
	_, ok = Normalize("Trump", 2016)
	assert.False(t, ok)
}
