// Package core contains the business logic for taskwise: the task manager,
// keyword classifiers, natural-language deadline parsing, and the
// enrichment orchestration that reconciles AI suggestions with the store.
package core

import (
	"strings"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

// categoryKeywords maps each category to the substrings that claim a task
// for it. Iteration follows models.Categories order, so a title matching
// several categories lands in the earliest one.
var categoryKeywords = map[models.Category][]string{
	models.CategoryWork:     {"meeting", "project", "deadline", "presentation", "client", "report", "email", "call", "pitch"},
	models.CategoryPersonal: {"family", "friend", "hobby", "leisure", "vacation", "birthday", "party", "social"},
	models.CategoryShopping: {"buy", "purchase", "shop", "grocery", "store", "mall", "online", "order"},
	models.CategoryHealth:   {"exercise", "workout", "gym", "doctor", "appointment", "medicine", "diet", "sleep"},
}

// DetermineCategory classifies a task title by keyword containment.
// Unrecognized titles map to CategoryOther. Pure and total.
func DetermineCategory(title string) models.Category {
	lower := strings.ToLower(title)
	for _, category := range models.Categories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return models.CategoryOther
}
