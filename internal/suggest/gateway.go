package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// minTitleRunes is the threshold below which the remote call is skipped
// entirely and the fallback is returned straight away.
const minTitleRunes = 3

// maxSteps bounds the step breakdown returned by SuggestSteps.
const maxSteps = 5

// Fallback messages surfaced when the remote service cannot answer.
const (
	adviceUnavailable = "Failed to get AI suggestion. Please try again later."
	stepsUnavailable  = "Unable to generate AI suggestions at this time."
	noTasksAdvice     = "You don't have any tasks yet. Add some tasks to get AI suggestions!"
)

// codeFence strips the Markdown fences the model sometimes wraps JSON in.
var codeFence = regexp.MustCompile("```(?:json)?")

// stepsSchema validates the step breakdown payload: a non-empty array of
// non-empty strings.
const stepsSchema = `{
	"type": "array",
	"items": {"type": "string", "minLength": 1},
	"minItems": 1
}`

var compiledStepsSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("steps.json", strings.NewReader(stepsSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("steps.json")
}()

// Completer is the remote call surface the gateway depends on; *Client
// satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Gateway implements core.SuggestionGateway over a chat-completion
// backend. All failures are logged and converted to fallbacks.
type Gateway struct {
	client Completer
	dates  *core.DateParser
	logger *log.Logger
	now    func() time.Time
}

// NewGateway creates a Gateway over the given completer.
func NewGateway(client Completer, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}
	return &Gateway{
		client: client,
		dates:  core.NewDateParser(),
		logger: logger,
		now:    time.Now,
	}
}

// SuggestCategory asks the model for a single category word, clamped to
// the closed category set. On failure it falls back to the keyword
// classifier, whose catch-all matches the clamped remote fallback.
func (g *Gateway) SuggestCategory(ctx context.Context, title string) models.Category {
	if tooShort(title) {
		return core.DetermineCategory(title)
	}
	content, err := g.client.Complete(ctx,
		"You are a highly accurate task categorizer.",
		fmt.Sprintf("Suggest a suitable category for this task: %q. Return the category as a single word, one of: Work, Personal, Shopping, Health, Other.", title),
		10, 0.5,
	)
	if err != nil {
		g.logger.Warn("category suggestion failed, using keyword classifier", "err", err)
		return core.DetermineCategory(title)
	}
	return models.NormalizeCategory(content)
}

// SuggestPriority asks the model for High, Medium, or Low. A transport
// failure falls back to the keyword prioritizer; an off-script answer
// clamps to Medium.
func (g *Gateway) SuggestPriority(ctx context.Context, title string) models.Priority {
	if tooShort(title) {
		return core.FallbackPriority(title)
	}
	content, err := g.client.Complete(ctx,
		"You are a helpful assistant that prioritizes tasks. The available priorities are: High, Medium, and Low. Respond with only the priority level.",
		fmt.Sprintf("Please prioritize this task: %q. Respond with ONLY the priority level (High, Medium, or Low).", title),
		10, 0.3,
	)
	if err != nil {
		g.logger.Warn("priority suggestion failed, using keyword fallback", "err", err)
		return core.FallbackPriority(title)
	}
	return models.NormalizePriority(content)
}

// SuggestDeadline resolves a deadline for the task. A date expression in
// the title itself wins over the model's estimate; only when nothing
// parses is the model asked for a YYYY-MM-DD date. Any failure yields
// today.
func (g *Gateway) SuggestDeadline(ctx context.Context, title string) time.Time {
	now := g.now()
	if deadline, ok := g.dates.ParseDeadline(title, now); ok {
		return deadline
	}
	if tooShort(title) {
		return startOfDay(now)
	}
	content, err := g.client.Complete(ctx,
		"You are an AI that specializes in suggesting task deadlines.",
		fmt.Sprintf("Estimate a reasonable due date for this task, considering its urgency and complexity: %q. Return a specific date in the format \"YYYY-MM-DD\".", title),
		50, 0.7,
	)
	if err != nil {
		g.logger.Warn("deadline suggestion failed, defaulting to today", "err", err)
		return startOfDay(now)
	}
	deadline, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(content), now.Location())
	if err != nil {
		g.logger.Warn("deadline suggestion was not a date, defaulting to today", "content", content)
		return startOfDay(now)
	}
	return deadline
}

// SuggestSteps asks the model for a JSON array of up to five actionable
// steps. The payload is schema-validated; anything malformed collapses to
// a single "unavailable" line.
func (g *Gateway) SuggestSteps(ctx context.Context, title string) []string {
	if tooShort(title) {
		return []string{stepsUnavailable}
	}
	content, err := g.client.Complete(ctx,
		"You are a highly specialized task management AI assistant. Your responses must be extremely detailed, specific, and directly relevant to the given task.",
		fmt.Sprintf("Generate a list of 5 detailed, practical steps to complete this task: %q. "+
			"Be specific, suggest concrete actions and relevant tools, and make each step a distinct move toward completion. "+
			"Format your response as a JSON array of strings with no text outside the array.", title),
		500, 0.5,
	)
	if err != nil {
		g.logger.Warn("step suggestion failed", "err", err)
		return []string{stepsUnavailable}
	}

	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(content, ""))
	var payload any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		g.logger.Warn("step suggestion was not valid JSON", "err", err)
		return []string{stepsUnavailable}
	}
	if err := compiledStepsSchema.Validate(payload); err != nil {
		g.logger.Warn("step suggestion did not match schema", "err", err)
		return []string{stepsUnavailable}
	}

	var steps []string
	if err := json.Unmarshal([]byte(cleaned), &steps); err != nil {
		return []string{stepsUnavailable}
	}
	if len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}
	return steps
}

// Advise returns short free-text advice for a single task.
func (g *Gateway) Advise(ctx context.Context, title string) string {
	if tooShort(title) {
		return adviceUnavailable
	}
	content, err := g.client.Complete(ctx,
		"You are a helpful assistant that provides suggestions for managing tasks. Keep your responses concise, actionable, and limited to 4 lines maximum.",
		fmt.Sprintf("Please provide a suggestion for this task: %q", title),
		100, 0.7,
	)
	if err != nil {
		g.logger.Warn("advice suggestion failed", "err", err)
		return adviceUnavailable
	}
	return strings.TrimSpace(content)
}

// AdviseTasks returns advice across the whole task list. An empty list
// short-circuits without a remote call.
func (g *Gateway) AdviseTasks(ctx context.Context, tasks []models.Task) string {
	if len(tasks) == 0 {
		return noTasksAdvice
	}

	counts := make(map[models.Category]int)
	for _, t := range tasks {
		counts[t.Category]++
	}
	var summary []string
	for _, c := range models.Categories {
		if counts[c] > 0 {
			summary = append(summary, fmt.Sprintf("%d %s task(s)", counts[c], c))
		}
	}

	encoded, err := json.Marshal(tasks)
	if err != nil {
		g.logger.Warn("encoding tasks for advice failed", "err", err)
		return adviceUnavailable
	}

	content, err := g.client.Complete(ctx,
		"You are a helpful assistant that provides suggestions for managing tasks.",
		fmt.Sprintf("Here are my current tasks: %s. There are %s. Can you provide some suggestions or insights based on these tasks?",
			encoded, strings.Join(summary, ", ")),
		150, 0.7,
	)
	if err != nil {
		g.logger.Warn("task list advice failed", "err", err)
		return adviceUnavailable
	}
	return strings.TrimSpace(content)
}

func tooShort(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) <= minTitleRunes
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
