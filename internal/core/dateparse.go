package core

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// defaultDeadlineHour is applied when a title mentions a date but no clock
// time ("pay rent on friday" becomes friday 15:00 local).
const defaultDeadlineHour = 15

// DateParser extracts the first natural-language date/time expression from
// free text.
type DateParser struct {
	parser *when.Parser
}

// NewDateParser creates a parser with the English and common rule sets.
func NewDateParser() *DateParser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return &DateParser{parser: p}
}

// ParseDeadline returns the deadline expressed in text, relative to base.
// The second return is false when no date expression is detectable. When a
// date is found without an explicit time of day, the time defaults to
// 15:00 local.
func (p *DateParser) ParseDeadline(text string, base time.Time) (time.Time, bool) {
	r, err := p.parser.Parse(text, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}

	deadline := r.Time
	// The rule set carries the base clock through date-only expressions, so
	// an unchanged clock means no time of day was mentioned.
	if sameClock(deadline, base) {
		deadline = time.Date(
			deadline.Year(), deadline.Month(), deadline.Day(),
			defaultDeadlineHour, 0, 0, 0, deadline.Location(),
		)
	}
	return deadline, true
}

func sameClock(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}
