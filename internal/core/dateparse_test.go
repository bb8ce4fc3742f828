package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadlineWithExplicitTime(t *testing.T) {
	p := NewDateParser()
	base := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	got, ok := p.ParseDeadline("submit report tomorrow at 5pm", base)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 11, 17, 0, 0, 0, time.UTC), got)
}

func TestParseDeadlineDefaultsToAfternoon(t *testing.T) {
	p := NewDateParser()
	base := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	got, ok := p.ParseDeadline("pay rent tomorrow", base)
	require.True(t, ok)
	assert.Equal(t, 15, got.Hour(), "a date without a time of day lands at 15:00")
	assert.Equal(t, 11, got.Day())
}

func TestParseDeadlineNoDate(t *testing.T) {
	p := NewDateParser()
	base := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	_, ok := p.ParseDeadline("refactor the billing module", base)
	assert.False(t, ok)
}
