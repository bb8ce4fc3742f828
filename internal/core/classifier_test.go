package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

func TestDetermineCategory(t *testing.T) {
	tests := []struct {
		title string
		want  models.Category
	}{
		{"Schedule a meeting with the team", models.CategoryWork},
		{"send the quarterly REPORT", models.CategoryWork},
		{"Plan a birthday party", models.CategoryPersonal},
		{"book the family vacation", models.CategoryPersonal},
		{"Buy groceries", models.CategoryShopping},
		{"order new shoes online", models.CategoryShopping},
		{"Morning workout at the gym", models.CategoryHealth},
		{"doctor appointment on friday", models.CategoryHealth},
		{"water the plants", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineCategory(tt.title))
		})
	}
}

func TestDetermineCategoryFirstMatchWins(t *testing.T) {
	// "meeting" (Work) beats "gym" (Health) because categories are
	// checked in a fixed order.
	assert.Equal(t, models.CategoryWork, DetermineCategory("meeting at the gym"))
}

func TestDetermineCategoryIsTotal(t *testing.T) {
	valid := make(map[models.Category]bool, len(models.Categories))
	for _, c := range models.Categories {
		valid[c] = true
	}
	rapid.Check(t, func(t *rapid.T) {
		title := rapid.String().Draw(t, "title")
		got := DetermineCategory(title)
		if !valid[got] {
			t.Fatalf("DetermineCategory(%q) returned %q, not a known category", title, got)
		}
	})
}
