package core

import (
	"strings"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

var (
	urgencyKeywords    = []string{"urgent", "asap", "deadline"}
	importanceKeywords = []string{"important", "soon"}
)

// FallbackPriority estimates a task's priority from keyword containment.
// It is the deterministic substitute used whenever the remote priority
// suggestion is unavailable. Pure and total.
func FallbackPriority(title string) models.Priority {
	lower := strings.ToLower(title)
	if containsAny(lower, urgencyKeywords) {
		return models.PriorityHigh
	}
	if containsAny(lower, importanceKeywords) {
		return models.PriorityMedium
	}
	return models.PriorityLow
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
