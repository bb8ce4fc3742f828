package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Work", CategoryWork},
		{"work", CategoryWork},
		{"  SHOPPING  ", CategoryShopping},
		{"General", CategoryOther},
		{"Chores", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.in), "input %q", tt.in)
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"High", PriorityHigh},
		{"low", PriorityLow},
		{" medium ", PriorityMedium},
		{"Critical", PriorityMedium},
		{"", PriorityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePriority(tt.in), "input %q", tt.in)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	assert.Less(t, PriorityRank(PriorityHigh), PriorityRank(PriorityMedium))
	assert.Less(t, PriorityRank(PriorityMedium), PriorityRank(PriorityLow))
	assert.Equal(t, PriorityRank(PriorityLow), PriorityRank(Priority("bogus")))
}
